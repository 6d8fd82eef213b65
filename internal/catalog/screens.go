package catalog

import (
	"strconv"
	"time"

	"github.com/pokenihongo/admin-console/internal/domain"
	"github.com/pokenihongo/admin-console/internal/multilingual"
)

var (
	staffRoles = []domain.Role{domain.RoleAdmin, domain.RoleStaff}
	adminRoles = []domain.Role{domain.RoleAdmin}

	levels   = []string{"1", "2", "3", "4", "5"}
	booleans = []string{"true", "false"}
	statuses = []string{"DRAFT", "ACTIVE", "INACTIVE", "EXPIRED"}
	sortDirs = []string{"asc", "desc"}

	nameLayout            = multilingual.NewLayout(multilingual.Name)
	nameDescriptionLayout = multilingual.NewLayout(multilingual.Name, multilingual.Description)
)

func itoa(n int) string { return strconv.Itoa(n) }

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func datePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return date(*t)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Screens returns the built-in screens in menu order.
func Screens() []Screen {
	return []Screen{
		&resource[domain.Lesson]{
			name: "lessons", title: "Lessons", path: "lesson", roles: staffRoles,
			columns: []Column{{"id", "ID"}, {"name", "Name"}, {"slug", "Slug"}, {"levelJlpt", "JLPT"}, {"lessonOrder", "Order"}, {"isPublished", "Published"}},
			filters: []FilterSpec{
				{Key: "levelJlpt", Title: "JLPT level", Options: levels},
				{Key: "isPublished", Title: "Published", Options: booleans},
				{Key: "sort", Title: "Sort", Options: sortDirs},
			},
			layout: &nameLayout,
			id:     func(v domain.Lesson) int { return v.ID },
			cells: func(v domain.Lesson, lang multilingual.Language) []string {
				return []string{itoa(v.ID), pick(v.NameTranslations, multilingual.Name, lang), v.Slug, "N" + itoa(v.LevelJlpt), itoa(v.LessonOrder), yesNo(v.IsPublished)}
			},
			build: buildLesson,
		},
		&resource[domain.Vocabulary]{
			name: "vocabulary", title: "Vocabulary", path: "vocabulary", roles: staffRoles,
			columns: []Column{{"id", "ID"}, {"wordJp", "Word"}, {"reading", "Reading"}, {"meaning", "Meaning"}, {"levelN", "Level"}, {"wordType", "Type"}},
			filters: []FilterSpec{
				{Key: "levelN", Title: "Level", Options: levels},
				{Key: "wordType", Title: "Word type"},
				{Key: "sort", Title: "Sort", Options: sortDirs},
			},
			id: func(v domain.Vocabulary) int { return v.ID },
			cells: func(v domain.Vocabulary, _ multilingual.Language) []string {
				return []string{itoa(v.ID), v.WordJp, v.Reading, v.Meaning, "N" + itoa(v.LevelN), v.WordType}
			},
			build: buildVocabulary,
		},
		&resource[domain.Kanji]{
			name: "kanji", title: "Kanji", path: "kanji", roles: staffRoles,
			columns: []Column{{"id", "ID"}, {"character", "Kanji"}, {"meaningKey", "Meaning"}, {"strokeCount", "Strokes"}, {"jlptLevel", "JLPT"}},
			filters: []FilterSpec{
				{Key: "jlptLevel", Title: "JLPT level", Options: levels},
				{Key: "strokeCount", Title: "Strokes"},
			},
			id: func(v domain.Kanji) int { return v.ID },
			cells: func(v domain.Kanji, _ multilingual.Language) []string {
				return []string{itoa(v.ID), v.Character, v.Meaning, itoa(v.StrokeCount), "N" + itoa(v.JlptLevel)}
			},
			build: buildKanji,
		},
		&resource[domain.Grammar]{
			name: "grammar", title: "Grammar", path: "grammar", roles: staffRoles,
			columns: []Column{{"id", "ID"}, {"structure", "Structure"}, {"level", "Level"}},
			filters: []FilterSpec{
				{Key: "level", Title: "Level", Options: []string{"N1", "N2", "N3", "N4", "N5"}},
			},
			id: func(v domain.Grammar) int { return v.ID },
			cells: func(v domain.Grammar, _ multilingual.Language) []string {
				return []string{itoa(v.ID), v.Structure, v.Level}
			},
			build: buildGrammar,
		},
		&resource[domain.Test]{
			name: "tests", title: "Tests", path: "test", roles: staffRoles,
			columns: []Column{{"id", "ID"}, {"name", "Name"}, {"testType", "Type"}, {"status", "Status"}, {"levelN", "Level"}, {"price", "Price"}},
			filters: []FilterSpec{
				{Key: "testType", Title: "Type", Options: testTypes},
				{Key: "status", Title: "Status", Options: statuses},
				{Key: "levelN", Title: "Level", Options: levels},
			},
			layout: &nameLayout,
			id:     func(v domain.Test) int { return v.ID },
			cells: func(v domain.Test, lang multilingual.Language) []string {
				return []string{itoa(v.ID), pick(v.NameTranslations, multilingual.Name, lang), v.TestType, v.Status.String(), itoa(v.LevelN), itoa(v.Price)}
			},
			build: buildTest,
		},
		&resource[domain.TestSet]{
			name: "test-sets", title: "Test sets", path: "testset", roles: staffRoles,
			columns: []Column{{"id", "ID"}, {"name", "Name"}, {"testType", "Type"}, {"status", "Status"}, {"levelN", "Level"}},
			filters: []FilterSpec{
				{Key: "testType", Title: "Type", Options: testTypes},
				{Key: "status", Title: "Status", Options: statuses},
				{Key: "levelN", Title: "Level", Options: levels},
			},
			layout: &nameLayout,
			id:     func(v domain.TestSet) int { return v.ID },
			cells: func(v domain.TestSet, lang multilingual.Language) []string {
				return []string{itoa(v.ID), pick(v.NameTranslations, multilingual.Name, lang), v.TestType, v.Status.String(), itoa(v.LevelN)}
			},
			build: buildTestSet,
		},
		&resource[domain.User]{
			name: "users", title: "Users", path: "user", roles: adminRoles,
			columns: []Column{{"id", "ID"}, {"name", "Name"}, {"email", "Email"}, {"role", "Role"}, {"status", "Status"}, {"createdAt", "Created"}},
			filters: []FilterSpec{
				{Key: "status", Title: "Status", Options: []string{"ACTIVE", "INACTIVE", "BLOCKED"}},
				{Key: "role", Title: "Role", Options: []string{"ADMIN", "STAFF", "USER"}},
			},
			id: func(v domain.User) int { return v.ID },
			cells: func(v domain.User, _ multilingual.Language) []string {
				return []string{itoa(v.ID), v.Name, v.Email, v.RoleName().String(), v.Status, date(v.CreatedAt)}
			},
		},
		&resource[domain.Reward]{
			name: "rewards", title: "Rewards", path: "reward", roles: staffRoles,
			columns: []Column{{"id", "ID"}, {"name", "Name"}, {"rewardType", "Type"}, {"rewardItem", "Amount"}, {"rewardTarget", "Target"}},
			filters: []FilterSpec{
				{Key: "rewardType", Title: "Type", Options: []string{"LEVEL", "DAILY_REQUEST", "EVENT", "ACHIEVEMENT"}},
				{Key: "rewardTarget", Title: "Target", Options: []string{"EXP", "POKEMON", "POKE_COINS", "SPARKLES"}},
			},
			layout: &nameLayout,
			id:     func(v domain.Reward) int { return v.ID },
			cells: func(v domain.Reward, lang multilingual.Language) []string {
				return []string{itoa(v.ID), pick(v.NameTranslations, multilingual.Name, lang), v.RewardType, itoa(v.RewardItem), v.RewardTarget}
			},
			build: buildReward,
		},
		&resource[domain.GachaBanner]{
			name: "gacha-banners", title: "Gacha banners", path: "gacha-banner", roles: staffRoles,
			columns: []Column{{"id", "ID"}, {"name", "Name"}, {"status", "Status"}, {"startDate", "Start"}, {"endDate", "End"}},
			filters: []FilterSpec{
				{Key: "status", Title: "Status", Options: statuses},
			},
			layout: &nameDescriptionLayout,
			id:     func(v domain.GachaBanner) int { return v.ID },
			cells: func(v domain.GachaBanner, lang multilingual.Language) []string {
				return []string{itoa(v.ID), pick(v.NameTranslations, multilingual.Name, lang), v.Status.String(), datePtr(v.StartDate), datePtr(v.EndDate)}
			},
			build: buildGachaBanner,
		},
		&resource[domain.AIConfig]{
			name: "ai-configs", title: "AI configs", path: "gemini-config", roles: adminRoles,
			columns: []Column{{"id", "ID"}, {"name", "Name"}, {"model", "Model"}, {"isEnabled", "Enabled"}},
			filters: []FilterSpec{
				{Key: "isEnabled", Title: "Enabled", Options: booleans},
			},
			id: func(v domain.AIConfig) int { return v.ID },
			cells: func(v domain.AIConfig, _ multilingual.Language) []string {
				return []string{itoa(v.ID), v.Name, v.Model, yesNo(v.IsEnabled)}
			},
		},
		&resource[domain.Permission]{
			name: "permissions", title: "Permissions", path: "permission", roles: adminRoles,
			columns: []Column{{"id", "ID"}, {"name", "Name"}, {"module", "Module"}, {"method", "Method"}, {"path", "Path"}},
			filters: []FilterSpec{
				{Key: "module", Title: "Module"},
				{Key: "method", Title: "Method", Options: []string{"GET", "POST", "PUT", "PATCH", "DELETE"}},
			},
			id: func(v domain.Permission) int { return v.ID },
			cells: func(v domain.Permission, _ multilingual.Language) []string {
				return []string{itoa(v.ID), v.Name, v.Module, v.Method, v.Path}
			},
			build: buildPermission,
		},
	}
}
