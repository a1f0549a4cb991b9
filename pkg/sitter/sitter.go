// Package sitter describes the sitters owners can book.
package sitter

import (
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/petsit/pkg/account"
)

// Sitter is a bookable profile.
type Sitter struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Role account.Role `json:"role"`
	City string       `json:"city"`
	Lat  float64      `json:"lat"`
	Lng  float64      `json:"lng"`
	// Rate is the hourly rate in cents.
	Rate int    `json:"rate"`
	Bio  string `json:"bio,omitempty"`
}

// Title implements list.DefaultItem.
func (s Sitter) Title() string { return s.Name }

// Description implements list.DefaultItem.
func (s Sitter) Description() string {
	return fmt.Sprintf("%s · %s/h", s.City, FormatRate(s.Rate))
}

// FilterValue implements list.Item.
func (s Sitter) FilterValue() string { return s.Name + " " + s.City }

// FormatRate renders cents as dollars.
func FormatRate(cents int) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// Filter returns sitters whose city contains city (case-insensitive). An empty
// city matches everyone.
func Filter(all []Sitter, city string) []Sitter {
	city = strings.ToLower(strings.TrimSpace(city))
	out := make([]Sitter, 0, len(all))
	for _, s := range all {
		if city == "" || strings.Contains(strings.ToLower(s.City), city) {
			out = append(out, s)
		}
	}
	return out
}

// Sort orders sitters by name, then ID.
func Sort(all []Sitter) {
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Name == all[j].Name {
			return all[i].ID < all[j].ID
		}
		return all[i].Name < all[j].Name
	})
}

// Find returns the sitter with id.
func Find(all []Sitter, id string) (Sitter, bool) {
	for _, s := range all {
		if s.ID == id {
			return s, true
		}
	}
	return Sitter{}, false
}

// Demo returns the sample directory seeded by `petsit demo`.
func Demo() []Sitter {
	return []Sitter{
		{ID: "ava", Name: "Ava Moreno", Role: account.NormalizeRole("PET_SITTER"), City: "Portland", Lat: 45.52, Lng: -122.68, Rate: 1800, Bio: "Dog walker and cat whisperer. Happy to do overnight stays with senior pets."},
		{ID: "ben", Name: "Ben Okafor", Role: account.NormalizeRole("petSitter"), City: "Seattle", Lat: 47.61, Lng: -122.33, Rate: 2200, Bio: "Vet tech on weekdays, available evenings and weekends."},
		{ID: "cleo", Name: "Cleo Tanaka", Role: account.NormalizeRole("sitter"), City: "San Francisco", Lat: 37.77, Lng: -122.42, Rate: 2500, Bio: "Experienced with reptiles and birds."},
		{ID: "dev", Name: "Dev Patel", Role: account.NormalizeRole("pet-sitter"), City: "Denver", Lat: 39.74, Lng: -104.99, Rate: 1600, Bio: "Hiking buddy for high energy dogs."},
		{ID: "eli", Name: "Eli Novak", Role: account.NormalizeRole("Pet Sitter"), City: "Chicago", Lat: 41.88, Lng: -87.63, Rate: 2000, Bio: "Drop-in visits, medication, and litter duty."},
		{ID: "fay", Name: "Fay Lindqvist", Role: account.NormalizeRole("PET_SITTER"), City: "Boston", Lat: 42.36, Lng: -71.06, Rate: 2300, Bio: "Long walks along the Charles, photos after every visit."},
		{ID: "gus", Name: "Gus Ferreira", Role: account.NormalizeRole("sitter"), City: "Austin", Lat: 30.27, Lng: -97.74, Rate: 1500, Bio: "Backyard with shade and a kiddie pool for summer visits."},
	}
}
