package catalog

import (
	"time"

	"github.com/pokenihongo/admin-console/internal/domain"
	"github.com/pokenihongo/admin-console/internal/multilingual"
)

type lessonPayload struct {
	Slug             string               `json:"slug"             validate:"required,max=100"`
	LevelJlpt        int                  `json:"levelJlpt"        validate:"min=1,max=5"`
	LessonOrder      int                  `json:"lessonOrder"      validate:"gte=0"`
	IsPublished      bool                 `json:"isPublished"`
	NameTranslations []domain.Translation `json:"nameTranslations" validate:"required,min=1,dive"`
}

func buildLesson(sub Submission) (any, error) {
	f := newFields(sub)
	f.checkBinding(sub)
	p := lessonPayload{
		Slug:             f.str("slug"),
		LevelJlpt:        f.int("levelJlpt"),
		LessonOrder:      f.int("lessonOrder"),
		IsPublished:      f.bool("isPublished"),
		NameTranslations: f.translations(sub, multilingual.Name),
	}
	return p, f.err()
}

type vocabularyPayload struct {
	WordJp   string `json:"wordJp"   validate:"required,max=100"`
	Reading  string `json:"reading"  validate:"required,max=100"`
	LevelN   int    `json:"levelN"   validate:"min=1,max=5"`
	WordType string `json:"wordType" validate:"omitempty,oneof=noun verb adjective adverb particle expression"`
	Meaning  string `json:"meaning"  validate:"required"`
}

func buildVocabulary(sub Submission) (any, error) {
	f := newFields(sub)
	p := vocabularyPayload{
		WordJp:   f.str("wordJp"),
		Reading:  f.str("reading"),
		LevelN:   f.int("levelN"),
		WordType: f.str("wordType"),
		Meaning:  f.str("meaning"),
	}
	return p, f.err()
}

type kanjiPayload struct {
	Character   string `json:"character"   validate:"required,len=1"`
	MeaningKey  string `json:"meaningKey"  validate:"required"`
	StrokeCount int    `json:"strokeCount" validate:"min=1,max=64"`
	JlptLevel   int    `json:"jlptLevel"   validate:"min=1,max=5"`
}

func buildKanji(sub Submission) (any, error) {
	f := newFields(sub)
	p := kanjiPayload{
		Character:   f.str("character"),
		MeaningKey:  f.str("meaningKey"),
		StrokeCount: f.int("strokeCount"),
		JlptLevel:   f.int("jlptLevel"),
	}
	return p, f.err()
}

type grammarPayload struct {
	Structure string `json:"structure" validate:"required,max=255"`
	Level     string `json:"level"     validate:"required,oneof=N1 N2 N3 N4 N5"`
}

func buildGrammar(sub Submission) (any, error) {
	f := newFields(sub)
	p := grammarPayload{
		Structure: f.str("structure"),
		Level:     f.str("level"),
	}
	return p, f.err()
}

var testTypes = []string{"PLACEMENT_TEST_DONE", "MATCH_TEST", "QUIZ_TEST", "REVIEW_TEST", "PRACTICE_TEST", "LESSON_TEST", "LESSON_REVIEW"}

type testPayload struct {
	TestType         string               `json:"testType"         validate:"required,oneof=PLACEMENT_TEST_DONE MATCH_TEST QUIZ_TEST REVIEW_TEST PRACTICE_TEST LESSON_TEST LESSON_REVIEW"`
	Status           domain.PublishStatus `json:"status"           validate:"required,oneof=DRAFT ACTIVE INACTIVE EXPIRED"`
	LevelN           int                  `json:"levelN"           validate:"min=0,max=5"`
	Price            int                  `json:"price"            validate:"gte=0"`
	NameTranslations []domain.Translation `json:"nameTranslations" validate:"required,min=1,dive"`
}

func buildTest(sub Submission) (any, error) {
	f := newFields(sub)
	f.checkBinding(sub)
	p := testPayload{
		TestType:         f.str("testType"),
		Status:           domain.PublishStatus(f.str("status")),
		LevelN:           f.int("levelN"),
		Price:            f.int("price"),
		NameTranslations: f.translations(sub, multilingual.Name),
	}
	return p, f.err()
}

type testSetPayload struct {
	TestType         string               `json:"testType"         validate:"required,oneof=PLACEMENT_TEST_DONE MATCH_TEST QUIZ_TEST REVIEW_TEST PRACTICE_TEST LESSON_TEST LESSON_REVIEW"`
	Status           domain.PublishStatus `json:"status"           validate:"required,oneof=DRAFT ACTIVE INACTIVE EXPIRED"`
	LevelN           int                  `json:"levelN"           validate:"min=0,max=5"`
	NameTranslations []domain.Translation `json:"nameTranslations" validate:"required,min=1,dive"`
}

func buildTestSet(sub Submission) (any, error) {
	f := newFields(sub)
	f.checkBinding(sub)
	p := testSetPayload{
		TestType:         f.str("testType"),
		Status:           domain.PublishStatus(f.str("status")),
		LevelN:           f.int("levelN"),
		NameTranslations: f.translations(sub, multilingual.Name),
	}
	return p, f.err()
}

type rewardPayload struct {
	RewardType       string               `json:"rewardType"       validate:"required,oneof=LEVEL DAILY_REQUEST EVENT ACHIEVEMENT"`
	RewardItem       int                  `json:"rewardItem"       validate:"min=1"`
	RewardTarget     string               `json:"rewardTarget"     validate:"required,oneof=EXP POKEMON POKE_COINS SPARKLES"`
	NameTranslations []domain.Translation `json:"nameTranslations" validate:"required,min=1,dive"`
}

func buildReward(sub Submission) (any, error) {
	f := newFields(sub)
	f.checkBinding(sub)
	p := rewardPayload{
		RewardType:       f.str("rewardType"),
		RewardItem:       f.int("rewardItem"),
		RewardTarget:     f.str("rewardTarget"),
		NameTranslations: f.translations(sub, multilingual.Name),
	}
	return p, f.err()
}

type gachaBannerPayload struct {
	Status                  domain.PublishStatus `json:"status"                  validate:"required,oneof=DRAFT ACTIVE INACTIVE EXPIRED"`
	StartDate               time.Time            `json:"startDate"               validate:"required"`
	EndDate                 time.Time            `json:"endDate"                 validate:"required,gtfield=StartDate"`
	NameTranslations        []domain.Translation `json:"nameTranslations"        validate:"required,min=1,dive"`
	DescriptionTranslations []domain.Translation `json:"descriptionTranslations" validate:"required,min=1,dive"`
}

func buildGachaBanner(sub Submission) (any, error) {
	f := newFields(sub)
	f.checkBinding(sub)
	p := gachaBannerPayload{
		Status:                  domain.PublishStatus(f.str("status")),
		StartDate:               f.time("startDate"),
		EndDate:                 f.time("endDate"),
		NameTranslations:        f.translations(sub, multilingual.Name),
		DescriptionTranslations: f.translations(sub, multilingual.Description),
	}
	return p, f.err()
}

type permissionPayload struct {
	Name   string `json:"name"   validate:"required,max=100"`
	Module string `json:"module" validate:"required"`
	Method string `json:"method" validate:"required,oneof=GET POST PUT PATCH DELETE"`
	Path   string `json:"path"   validate:"required,startswith=/"`
}

func buildPermission(sub Submission) (any, error) {
	f := newFields(sub)
	p := permissionPayload{
		Name:   f.str("name"),
		Module: f.str("module"),
		Method: f.str("method"),
		Path:   f.str("path"),
	}
	return p, f.err()
}
