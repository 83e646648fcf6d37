package util

import (
	"fmt"
	"math/rand"
	"time"
)

var random = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec

var moods = []string{
	"Quiet", "Lucky", "Midnight", "Golden", "Crimson", "Misty", "Lantern", "Silver", "Hidden", "Rainy",
	"Autumn", "Winter", "Spring", "Summer", "Full Moon", "Smoky", "Bright", "Wandering",
}

// the twelve months of a hwatu deck
var months = []string{
	"Pine", "Plum Blossom", "Cherry Blossom", "Wisteria", "Iris", "Peony", "Bush Clover", "Pampas",
	"Chrysanthemum", "Maple", "Paulownia", "Willow",
}

var places = []string{"Pavilion", "Parlor", "Den", "Table", "Hall", "Terrace"}

// GetRandomRoomName returns a random room name like "Misty Maple Pavilion"
func GetRandomRoomName() string {
	mood := moods[random.Intn(len(moods))]
	month := months[random.Intn(len(months))]
	place := places[random.Intn(len(places))]

	return fmt.Sprintf("%s %s %s", mood, month, place)
}
