// Package model defines the domain data shared by the front-ends and services:
// firmware artifacts and their flash slots, baud rates, the immutable session
// state with its reducer, operation records and persisted project records.
package model
