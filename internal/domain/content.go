package domain

import "time"

// Translation is one per-language record of a translatable field.
type Translation struct {
	LanguageCode string `json:"languageCode" validate:"required,oneof=vi en ja"`
	Value        string `json:"value"        validate:"required"`
}

// Lesson is a unit of the learning path.
type Lesson struct {
	ID               int           `json:"id"`
	Slug             string        `json:"slug"`
	LevelJlpt        int           `json:"levelJlpt"`
	LessonOrder      int           `json:"lessonOrder"`
	IsPublished      bool          `json:"isPublished"`
	NameTranslations []Translation `json:"nameTranslations"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// Vocabulary is a single word with its reading.
type Vocabulary struct {
	ID        int       `json:"id"`
	WordJp    string    `json:"wordJp"`
	Reading   string    `json:"reading"`
	LevelN    int       `json:"levelN"`
	WordType  string    `json:"wordType"`
	Meaning   string    `json:"meaning"`
	CreatedAt time.Time `json:"createdAt"`
}

// Kanji is a single character entry.
type Kanji struct {
	ID          int    `json:"id"`
	Character   string `json:"character"`
	Meaning     string `json:"meaningKey"`
	StrokeCount int    `json:"strokeCount"`
	JlptLevel   int    `json:"jlptLevel"`
}

// Grammar is a grammar pattern.
type Grammar struct {
	ID        int    `json:"id"`
	Structure string `json:"structure"`
	Level     string `json:"level"`
}

// Test is an exam, quiz or placement test.
type Test struct {
	ID               int           `json:"id"`
	TestType         string        `json:"testType"`
	Status           PublishStatus `json:"status"`
	LevelN           int           `json:"levelN"`
	Price            int           `json:"price"`
	CreatorID        int           `json:"creatorId"`
	NameTranslations []Translation `json:"nameTranslations"`
}

// TestSet groups questions used by tests.
type TestSet struct {
	ID               int           `json:"id"`
	TestType         string        `json:"testType"`
	Status           PublishStatus `json:"status"`
	LevelN           int           `json:"levelN"`
	CreatorID        int           `json:"creatorId"`
	NameTranslations []Translation `json:"nameTranslations"`
}

// Reward is an item granted to learners.
type Reward struct {
	ID               int           `json:"id"`
	RewardType       string        `json:"rewardType"`
	RewardItem       int           `json:"rewardItem"`
	RewardTarget     string        `json:"rewardTarget"`
	NameTranslations []Translation `json:"nameTranslations"`
}

// GachaBanner is a time-boxed gacha or shop banner.
type GachaBanner struct {
	ID                      int           `json:"id"`
	Status                  PublishStatus `json:"status"`
	StartDate               *time.Time    `json:"startDate"`
	EndDate                 *time.Time    `json:"endDate"`
	NameTranslations        []Translation `json:"nameTranslations"`
	DescriptionTranslations []Translation `json:"descriptionTranslations"`
}

// AIConfig configures one AI-backed service (prompt model, provider).
type AIConfig struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Model     string `json:"model"`
	IsEnabled bool   `json:"isEnabled"`
}

// Permission is an API permission assignable to roles.
type Permission struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Module string `json:"module"`
	Method string `json:"method"`
	Path   string `json:"path"`
}
