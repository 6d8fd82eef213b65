package catalog

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokenihongo/admin-console/internal/adapter/pokeapi"
	"github.com/pokenihongo/admin-console/internal/domain"
	"github.com/pokenihongo/admin-console/internal/listing"
	"github.com/pokenihongo/admin-console/internal/multilingual"
)

func okCreate(_ context.Context, _ string, _ any) (json.RawMessage, error) {
	return json.RawMessage(`{"id": 99}`), nil
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	names := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		names = append(names, fe.Field)
	}
	return names
}

func lessonForm() url.Values {
	return url.Values{
		"slug":        {"hiragana-1"},
		"levelJlpt":   {"5"},
		"lessonOrder": {"1"},
		"isPublished": {"true"},
		"name.vi":     {"Bảng chữ Hiragana"},
		"name.en":     {"Hiragana"},
	}
}

func TestRegistry_Create_Lesson(t *testing.T) {
	t.Parallel()

	client := &apiClientMock{
		CreateFunc: okCreate,
		ListFunc: func(_ context.Context, _ string, _ url.Values, _ string) (pokeapi.ListResult, error) {
			return pokeapi.ListResult{}, nil
		},
	}
	reg := newTestRegistry(client)
	ctx := context.Background()

	ctrl, err := reg.Open("lessons", domain.RoleStaff, listing.Options{})
	require.NoError(t, err)
	require.NoError(t, ctrl.Refresh(ctx))

	s, err := reg.Lookup("lessons")
	require.NoError(t, err)

	data, err := reg.Create(ctx, domain.RoleStaff, "lessons", FormSubmission(s, lessonForm()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 99}`, string(data))

	calls := client.CreateCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "lesson", calls[0].Path)
	p, ok := calls[0].Payload.(lessonPayload)
	require.True(t, ok, "payload type %T", calls[0].Payload)
	assert.Equal(t, "hiragana-1", p.Slug)
	assert.Equal(t, 5, p.LevelJlpt)
	assert.True(t, p.IsPublished)
	assert.Equal(t, []domain.Translation{
		{LanguageCode: "vi", Value: "Bảng chữ Hiragana"},
		{LanguageCode: "en", Value: "Hiragana"},
	}, p.NameTranslations)

	// The mutation invalidated the cached page.
	require.NoError(t, ctrl.Refresh(ctx))
	assert.Len(t, client.ListCalls(), 2)
}

func TestRegistry_Create_StateBinding(t *testing.T) {
	t.Parallel()

	client := &apiClientMock{CreateFunc: okCreate}
	reg := newTestRegistry(client)

	b := multilingual.NewStateBinding(multilingual.NewLayout(multilingual.Name))
	require.NoError(t, b.Set(multilingual.Slot{Language: multilingual.Vietnamese, Field: multilingual.Name}, " Phần thưởng "))

	sub := Submission{
		Fields:  url.Values{"rewardType": {"EVENT"}, "rewardItem": {"100"}, "rewardTarget": {"POKE_COINS"}},
		Binding: b,
	}
	_, err := reg.Create(context.Background(), domain.RoleAdmin, "rewards", sub)
	require.NoError(t, err)

	p := client.CreateCalls()[0].Payload.(rewardPayload)
	assert.Equal(t, []domain.Translation{{LanguageCode: "vi", Value: "Phần thưởng"}}, p.NameTranslations)
}

func TestRegistry_Create_TranslationRules(t *testing.T) {
	t.Parallel()

	client := &apiClientMock{CreateFunc: okCreate}
	reg := newTestRegistry(client)
	s, err := reg.Lookup("gacha-banners")
	require.NoError(t, err)

	form := url.Values{
		"status":         {"ACTIVE"},
		"startDate":      {"2026-01-01"},
		"endDate":        {"2026-02-01"},
		"name.vi":        {"Banner"},
		"name.en":        {"Banner"},
		"description.ja": {"説明"},
	}
	_, err = reg.Create(context.Background(), domain.RoleStaff, "gacha-banners", FormSubmission(s, form))

	assert.ElementsMatch(t,
		[]string{"descriptionTranslations.vi", "descriptionTranslations.en", "nameTranslations.ja"},
		fieldNames(t, err))
	assert.Empty(t, client.CreateCalls())
}

func TestRegistry_Create_ValidatorErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		screen string
		form   url.Values
		want   map[string]string
	}{
		{
			name:   "lesson level out of range",
			screen: "lessons",
			form: func() url.Values {
				v := lessonForm()
				v.Set("levelJlpt", "9")
				v.Del("slug")
				return v
			}(),
			want: map[string]string{"levelJlpt": "must be at most 5", "slug": "required"},
		},
		{
			name:   "kanji must be one character",
			screen: "kanji",
			form:   url.Values{"character": {"日本"}, "meaningKey": {"sun"}, "strokeCount": {"4"}, "jlptLevel": {"5"}},
			want:   map[string]string{"character": "must have length 1"},
		},
		{
			name:   "grammar level enum",
			screen: "grammar",
			form:   url.Values{"structure": {"〜ている"}, "level": {"N6"}},
			want:   map[string]string{"level": "must be one of N1, N2, N3, N4, N5"},
		},
		{
			name:   "banner ends before start",
			screen: "gacha-banners",
			form: url.Values{
				"status": {"DRAFT"}, "startDate": {"2026-02-01"}, "endDate": {"2026-01-01"},
				"name.vi": {"A"}, "description.vi": {"B"},
			},
			want: map[string]string{"endDate": "must be after StartDate"},
		},
		{
			name:   "permission path",
			screen: "permissions",
			form:   url.Values{"name": {"list lessons"}, "module": {"lesson"}, "method": {"GET"}, "path": {"lesson"}},
			want:   map[string]string{"path": "must start with /"},
		},
		{
			name:   "parse failure",
			screen: "vocabulary",
			form:   url.Values{"wordJp": {"猫"}, "reading": {"ねこ"}, "levelN": {"five"}, "meaning": {"cat"}},
			want:   map[string]string{"levelN": "must be a number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := &apiClientMock{CreateFunc: okCreate}
			reg := newTestRegistry(client)
			s, err := reg.Lookup(tt.screen)
			require.NoError(t, err)

			_, err = reg.Create(context.Background(), domain.RoleAdmin, tt.screen, FormSubmission(s, tt.form))
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)

			got := map[string]string{}
			for _, fe := range ve.Errors {
				got[fe.Field] = fe.Message
			}
			assert.Equal(t, tt.want, got)
			assert.Empty(t, client.CreateCalls())
		})
	}
}

func TestRegistry_Create_NotSupported(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(&apiClientMock{})
	_, err := reg.Create(context.Background(), domain.RoleAdmin, "users", Submission{})
	assert.ErrorIs(t, err, domain.ErrNotSupported)
}

func TestRegistry_Create_BackendValidation(t *testing.T) {
	t.Parallel()

	client := &apiClientMock{
		CreateFunc: func(_ context.Context, _ string, _ any) (json.RawMessage, error) {
			return nil, domain.NewValidationError("slug", "already exists")
		},
	}
	reg := newTestRegistry(client)
	s, err := reg.Lookup("lessons")
	require.NoError(t, err)

	_, err = reg.Create(context.Background(), domain.RoleAdmin, "lessons", FormSubmission(s, lessonForm()))
	assert.Equal(t, []string{"slug"}, fieldNames(t, err))
}

func TestRegistry_Update(t *testing.T) {
	t.Parallel()

	client := &apiClientMock{
		UpdateFunc: func(_ context.Context, _, _ string, _ any) (json.RawMessage, error) {
			return json.RawMessage(`{}`), nil
		},
	}
	reg := newTestRegistry(client)
	s, err := reg.Lookup("lessons")
	require.NoError(t, err)

	_, err = reg.Update(context.Background(), domain.RoleAdmin, "lessons", "", FormSubmission(s, lessonForm()))
	assert.Equal(t, []string{"id"}, fieldNames(t, err))

	_, err = reg.Update(context.Background(), domain.RoleAdmin, "lessons", "7", FormSubmission(s, lessonForm()))
	require.NoError(t, err)
	require.Len(t, client.UpdateCalls(), 1)
	assert.Equal(t, "7", client.UpdateCalls()[0].ID)
}

func TestRegistry_Delete(t *testing.T) {
	t.Parallel()

	client := &apiClientMock{
		DeleteFunc: func(_ context.Context, _, _ string) error { return nil },
	}
	reg := newTestRegistry(client)
	ctx := context.Background()

	assert.ErrorIs(t, reg.Delete(ctx, domain.RoleStaff, "permissions", "3"), domain.ErrForbidden)
	assert.Empty(t, client.DeleteCalls())

	require.NoError(t, reg.Delete(ctx, domain.RoleAdmin, "permissions", "3"))
	require.Len(t, client.DeleteCalls(), 1)
	assert.Equal(t, "permission", client.DeleteCalls()[0].Path)
}

func TestFields_Time(t *testing.T) {
	t.Parallel()

	f := newFields(Submission{Fields: url.Values{
		"a": {"2026-01-02"},
		"b": {"2026-01-02T10:30:00Z"},
		"c": {"tomorrow"},
	}})

	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), f.time("a"))
	assert.Equal(t, time.Date(2026, 1, 2, 10, 30, 0, 0, time.UTC), f.time("b"))
	assert.True(t, f.time("c").IsZero())
	assert.True(t, f.time("missing").IsZero())
	assert.Equal(t, []string{"c"}, fieldNames(t, f.err()))
}
