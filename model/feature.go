package model

const ChromaBins = 12

type Chroma = [ChromaBins]float64

// Feature is one labelled row of the chromagram feature table.
type Feature struct {
	Label  string
	Chroma Chroma
	Source string
}

type FeatureTable = []Feature
