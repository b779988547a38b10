package model

import "github.com/amterp/dairy/internal/block"

// Animal is one livestock record. Every value is free text and is written
// to the store exactly as given.
type Animal struct {
	ID           string `json:"id"`
	Age          string `json:"age"`
	Gender       string `json:"gender"`
	PurchaseDate string `json:"purchase_date"`
	FeedType     string `json:"feed_type"`
	TimesPerDay  string `json:"times_per_day"`
	Vaccination  string `json:"vaccination"`
	Type         string `json:"type"`
}

// Fields returns the animal's values in store order.
func (a Animal) Fields() []block.Field {
	return block.AnimalSchema.Bind(
		a.ID,
		a.Age,
		a.Gender,
		a.PurchaseDate,
		a.FeedType,
		a.TimesPerDay,
		a.Vaccination,
		a.Type,
	)
}

// Encode serializes the animal as a store block.
func (a Animal) Encode() string {
	return block.Encode(a.Fields(), block.AnimalSentinel)
}
