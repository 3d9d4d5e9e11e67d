package parser

import "github.com/heartmarshall/myenglish-practice/internal/domain"

const fallbackContent = `Every Saturday morning, Maya walks to the farmers' market near her apartment. The market opens at seven o'clock, but Maya likes to arrive at eight, when the sellers have finished setting up their tables. She always brings two cloth bags because the market does not give out plastic ones.

Her first stop is Mr. Chen's vegetable stand. He grows tomatoes, carrots, and green beans on a small farm outside the city. Maya usually buys a bag of tomatoes for her pasta sauce. Next, she visits a bakery stall run by a young couple who bake their bread the night before. Their most popular item is a round loaf with walnuts, and it often sells out by ten.

Before going home, Maya sits on a bench by the fountain and drinks a cup of hot tea. She enjoys watching families with small children and listening to a man who plays the violin near the entrance. For Maya, the market is not only a place to shop but also a way to feel connected to her neighbors.`

// FallbackPassage returns the built-in passage used when model output cannot
// be parsed. Each call returns a fresh copy.
func FallbackPassage() domain.ReadingPassage {
	return domain.ReadingPassage{
		Title:   "A Saturday at the Farmers' Market",
		Content: fallbackContent,
		Questions: []domain.ReadingQuestion{
			{
				Question:      "What time does the market open?",
				Options:       [4]string{"Six o'clock", "Seven o'clock", "Eight o'clock", "Ten o'clock"},
				CorrectAnswer: "Seven o'clock",
				Explanation:   "The passage says the market opens at seven o'clock; Maya arrives at eight.",
			},
			{
				Question:      "Why does Maya bring cloth bags?",
				Options:       [4]string{"They are cheaper", "Her friend asked her to", "The market does not give out plastic bags", "She sells them at the market"},
				CorrectAnswer: "The market does not give out plastic bags",
				Explanation:   "She brings two cloth bags because the market does not give out plastic ones.",
			},
			{
				Question:      "What does Mr. Chen grow?",
				Options:       [4]string{"Apples, pears, and grapes", "Tomatoes, carrots, and green beans", "Potatoes and onions", "Flowers and herbs"},
				CorrectAnswer: "Tomatoes, carrots, and green beans",
				Explanation:   "He grows tomatoes, carrots, and green beans on a small farm.",
			},
			{
				Question:      "What does Maya usually buy from Mr. Chen?",
				Options:       [4]string{"Carrots for soup", "Green beans for a salad", "Tomatoes for her pasta sauce", "Potatoes for dinner"},
				CorrectAnswer: "Tomatoes for her pasta sauce",
				Explanation:   "Maya usually buys a bag of tomatoes for her pasta sauce.",
			},
			{
				Question:      "Who runs the bakery stall?",
				Options:       [4]string{"Mr. Chen", "Maya's neighbor", "A young couple", "The violin player"},
				CorrectAnswer: "A young couple",
				Explanation:   "The bakery stall is run by a young couple.",
			},
			{
				Question:      "When is the bread baked?",
				Options:       [4]string{"The night before", "Early that morning", "On Friday afternoon", "While customers wait"},
				CorrectAnswer: "The night before",
				Explanation:   "The couple bake their bread the night before the market.",
			},
			{
				Question:      "What is the bakery's most popular item?",
				Options:       [4]string{"A chocolate cake", "A round loaf with walnuts", "A bag of cookies", "A long white loaf"},
				CorrectAnswer: "A round loaf with walnuts",
				Explanation:   "Their most popular item is a round loaf with walnuts.",
			},
			{
				Question:      "What does Maya drink by the fountain?",
				Options:       [4]string{"Coffee", "Orange juice", "Hot tea", "Water"},
				CorrectAnswer: "Hot tea",
				Explanation:   "She sits on a bench by the fountain and drinks a cup of hot tea.",
			},
			{
				Question:      "Where does the man play the violin?",
				Options:       [4]string{"By the fountain", "Near the entrance", "Next to the bakery", "In Maya's apartment"},
				CorrectAnswer: "Near the entrance",
				Explanation:   "A man plays the violin near the entrance.",
			},
			{
				Question:      "What does the market mean to Maya?",
				Options:       [4]string{"Only a place to shop", "A place to work on weekends", "A way to feel connected to her neighbors", "A place to practice music"},
				CorrectAnswer: "A way to feel connected to her neighbors",
				Explanation:   "For Maya, the market is not only a place to shop but also a way to feel connected to her neighbors.",
			},
		},
	}
}
