package practice

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

// buildDialoguePrompt asks for a dialogue in the line format ParseDialogue reads.
func buildDialoguePrompt(topic, level string, turns int, translationLabel, glossLabel string) string {
	return fmt.Sprintf(`You are an English teacher writing practice material for Chinese-speaking learners.

Write a natural English dialogue of exactly %d lines between two speakers about "%s".
Use vocabulary suitable for a %s learner.

Format every line exactly like this, with no headings, numbering or commentary:

Speaker: English sentence
%s: Chinese translation of the sentence
%s: word=translation, word=translation

Rules:
- Speaker names are plain first names made of letters only.
- Put a blank line between speaker lines.
- List two or three useful words from each sentence on the %s line.`,
		turns, topic, level, translationLabel, glossLabel, glossLabel)
}

// buildPassagePrompt asks for a reading passage in the block format ParsePassage reads.
func buildPassagePrompt(topic, level string) string {
	return fmt.Sprintf(`You are an English teacher writing a reading comprehension exercise.

Write a short passage (three or four paragraphs) about "%s" for a %s learner,
followed by 5 multiple-choice questions about it.

Use exactly this format and nothing else:

Title: passage title
Content:
passage paragraphs separated by blank lines

Question 1: question text
A) option
B) option
C) option
D) option
Answer: letter of the correct option
Explanation: one sentence explaining the answer

Repeat the Question block for each question.`, topic, level)
}

// buildTranslationPrompt asks for a bare Chinese translation of one line.
func buildTranslationPrompt(turn domain.DialogueTurn) string {
	return fmt.Sprintf(`Translate this English sentence into Traditional Chinese.
Reply with the translation only, on one line, without quotes.

%s`, strings.TrimSpace(turn.Text))
}
