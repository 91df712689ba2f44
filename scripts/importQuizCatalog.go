package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"lms/config"
	"lms/database"
	"lms/models"
)

// Imports the placement quiz catalog from QuizCatalog.csv. One row per
// answer: category, quiz, question, order, answer, points, explanation.
// Categories, quizzes and questions are created on first sight.
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("QuizCatalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	db := database.Database.Db
	categories := make(map[string]uint) // title -> id
	quizzes := make(map[uint]uint)      // category id -> quiz id
	questions := make(map[string]uint)  // quiz id + text -> id

	inserted := 0
	skipped := 0

	for i, row := range records[1:] {
		categoryTitle := getField(row, headerIndex, "category")
		quizTitle := getField(row, headerIndex, "quiz")
		questionText := getField(row, headerIndex, "question")
		answerText := getField(row, headerIndex, "answer")

		if categoryTitle == "" || questionText == "" || answerText == "" {
			log.Printf("Skipping row %d: missing category, question or answer", i+2)
			skipped++
			continue
		}

		// Category (create on first sight)
		categoryID, ok := categories[categoryTitle]
		if !ok {
			var category models.Category
			if err := db.Where("title = ? AND is_deleted = ?", categoryTitle, false).First(&category).Error; err != nil {
				category = models.Category{Title: categoryTitle}
				if err := db.Create(&category).Error; err != nil {
					log.Fatalf("Failed to create category %q: %v", categoryTitle, err)
				}
			}
			categoryID = category.ID
			categories[categoryTitle] = categoryID
		}

		// Quiz (one per category)
		quizID, ok := quizzes[categoryID]
		if !ok {
			var quiz models.Quiz
			if err := db.Where("category_id = ? AND is_deleted = ?", categoryID, false).First(&quiz).Error; err != nil {
				quiz = models.Quiz{CategoryID: categoryID, Title: quizTitle}
				if err := db.Create(&quiz).Error; err != nil {
					log.Fatalf("Failed to create quiz for category %q: %v", categoryTitle, err)
				}
			}
			quizID = quiz.ID
			quizzes[categoryID] = quizID
		}

		// Question
		questionKey := strconv.Itoa(int(quizID)) + "|" + questionText
		questionID, ok := questions[questionKey]
		if !ok {
			var question models.Question
			if err := db.Where("quiz_id = ? AND text = ? AND is_deleted = ?", quizID, questionText, false).First(&question).Error; err != nil {
				question = models.Question{
					QuizID:     quizID,
					Text:       questionText,
					OrderIndex: parseInt(getField(row, headerIndex, "order")),
				}
				if err := db.Create(&question).Error; err != nil {
					log.Fatalf("Failed to create question %q: %v", questionText, err)
				}
			}
			questionID = question.ID
			questions[questionKey] = questionID
		}

		// Answer
		answer := models.Answer{
			QuestionID:  questionID,
			Text:        answerText,
			Points:      parseInt(getField(row, headerIndex, "points")),
			Explanation: getField(row, headerIndex, "explanation"),
		}
		if err := db.Create(&answer).Error; err != nil {
			log.Printf("Failed to insert answer on row %d: %v", i+2, err)
			skipped++
			continue
		}
		inserted++

		if inserted%500 == 0 {
			log.Printf("Imported %d answers...", inserted)
		}
	}

	log.Printf("Import complete. Answers inserted: %d, rows skipped: %d", inserted, skipped)
	log.Printf("Categories: %d, Quizzes: %d, Questions: %d", len(categories), len(quizzes), len(questions))
}

// getField retrieves a trimmed field by header name, or ""
func getField(row []string, headerIndex map[string]int, name string) string {
	idx, ok := headerIndex[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseInt parses an integer field, returning 0 on failure
func parseInt(value string) int {
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}
