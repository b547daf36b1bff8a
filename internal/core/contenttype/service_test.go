// Copyright (c) 2026 Raytha. All rights reserved.

package contenttype_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contenttype"
	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	contentTypes map[string]*contenttype.ContentType
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{contentTypes: make(map[string]*contenttype.ContentType)}
}

func (f *fakeRepository) Create(_ context.Context, contentType *contenttype.ContentType) error {
	clone := *contentType
	clone.Fields = append([]field.Definition(nil), contentType.Fields...)
	f.contentTypes[contentType.ID] = &clone
	return nil
}

func (f *fakeRepository) Update(_ context.Context, contentType *contenttype.ContentType) error {
	stored, ok := f.contentTypes[contentType.ID]
	if !ok {
		return apperr.NotFound("Content type")
	}
	fields := stored.Fields
	clone := *contentType
	clone.Fields = fields
	f.contentTypes[contentType.ID] = &clone
	return nil
}

func (f *fakeRepository) SoftDelete(_ context.Context, id, _ string) error {
	stored, ok := f.contentTypes[id]
	if !ok {
		return apperr.NotFound("Content type")
	}
	stored.IsDeleted = true
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*contenttype.ContentType, error) {
	stored, ok := f.contentTypes[id]
	if !ok || stored.IsDeleted {
		return nil, apperr.NotFound("Content type")
	}
	clone := *stored
	clone.Fields = append([]field.Definition(nil), stored.Fields...)
	// Hydrate in FieldOrder like the real store does.
	sort.SliceStable(clone.Fields, func(a, b int) bool {
		return clone.Fields[a].FieldOrder < clone.Fields[b].FieldOrder
	})
	return &clone, nil
}

func (f *fakeRepository) FindByDeveloperName(_ context.Context, developerName string) (*contenttype.ContentType, error) {
	for _, stored := range f.contentTypes {
		if stored.DeveloperName == developerName && !stored.IsDeleted {
			return f.FindByID(context.Background(), stored.ID)
		}
	}
	return nil, apperr.NotFound("Content type")
}

func (f *fakeRepository) List(_ context.Context, limit, offset int) ([]*contenttype.ContentType, int, error) {
	all := make([]*contenttype.ContentType, 0, len(f.contentTypes))
	for _, stored := range f.contentTypes {
		if !stored.IsDeleted {
			all = append(all, stored)
		}
	}
	return all, len(all), nil
}

func (f *fakeRepository) ExistsByDeveloperName(_ context.Context, developerName string) (bool, error) {
	_, err := f.FindByDeveloperName(context.Background(), developerName)
	return err == nil, nil
}

func (f *fakeRepository) CreateField(_ context.Context, definition *field.Definition) error {
	stored, ok := f.contentTypes[definition.ContentTypeID]
	if !ok {
		return apperr.NotFound("Content type")
	}
	stored.Fields = append(stored.Fields, *definition)
	return nil
}

func (f *fakeRepository) UpdateField(_ context.Context, definition *field.Definition) error {
	stored, ok := f.contentTypes[definition.ContentTypeID]
	if !ok {
		return apperr.NotFound("Content type")
	}
	for index := range stored.Fields {
		if stored.Fields[index].ID == definition.ID {
			stored.Fields[index] = *definition
			return nil
		}
	}
	return apperr.NotFound("Field")
}

func (f *fakeRepository) SoftDeleteField(_ context.Context, fieldID string) error {
	for _, stored := range f.contentTypes {
		for index := range stored.Fields {
			if stored.Fields[index].ID == fieldID {
				stored.Fields[index].IsDeleted = true
				return nil
			}
		}
	}
	return apperr.NotFound("Field")
}

func (f *fakeRepository) SaveFieldOrder(_ context.Context, contentTypeID string, orderedFieldIDs []string) error {
	stored, ok := f.contentTypes[contentTypeID]
	if !ok {
		return apperr.NotFound("Content type")
	}
	position := make(map[string]int, len(orderedFieldIDs))
	for index, id := range orderedFieldIDs {
		position[id] = index
	}
	for index := range stored.Fields {
		if newOrder, listed := position[stored.Fields[index].ID]; listed {
			stored.Fields[index].FieldOrder = newOrder
		}
	}
	return nil
}

// # Helpers

func blogInput() contenttype.CreateInput {
	return contenttype.CreateInput{
		LabelSingular:             "Blog Post",
		LabelPlural:               "Blog Posts",
		PrimaryFieldDeveloperName: "title",
		Fields: []contenttype.FieldInput{
			{Label: "Title", DeveloperName: "title", FieldType: field.TypeSingleLineText, IsRequired: true},
			{Label: "Body", DeveloperName: "body", FieldType: field.TypeLongText},
			{Label: "Category", DeveloperName: "category", FieldType: field.TypeSingleSelect,
				Choices: []field.Choice{{Label: "Technology", DeveloperName: "tech"}}},
		},
	}
}

func createBlogType(t *testing.T, service *contenttype.Service) *contenttype.ContentType {
	t.Helper()
	created, err := service.CreateContentType(context.Background(), blogInput())
	require.NoError(t, err)
	return created
}

// # Content Type Tests

func TestCreateContentType(t *testing.T) {
	service := contenttype.NewService(newFakeRepository())

	created := createBlogType(t, service)

	assert.Equal(t, "blog-post", created.DeveloperName)
	assert.Equal(t, contenttype.DefaultRouteTemplate, created.DefaultRouteTemplate)
	require.Len(t, created.Fields, 3)

	primary, found := created.PrimaryField()
	require.True(t, found)
	assert.Equal(t, "title", primary.DeveloperName)

	// FieldOrder follows the input order, dense from zero.
	for index, definition := range created.Fields {
		assert.Equal(t, index, definition.FieldOrder)
	}
}

func TestCreateContentType_DuplicateDeveloperName(t *testing.T) {
	service := contenttype.NewService(newFakeRepository())
	createBlogType(t, service)

	_, err := service.CreateContentType(context.Background(), blogInput())
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestCreateContentType_PrimaryFieldMustExist(t *testing.T) {
	service := contenttype.NewService(newFakeRepository())

	input := blogInput()
	input.PrimaryFieldDeveloperName = "missing"

	_, err := service.CreateContentType(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestEditContentType_DeveloperNameImmutable(t *testing.T) {
	service := contenttype.NewService(newFakeRepository())
	created := createBlogType(t, service)

	edited, err := service.EditContentType(context.Background(), created.ID, contenttype.EditInput{
		LabelSingular: "Article",
		LabelPlural:   "Articles",
	})
	require.NoError(t, err)

	assert.Equal(t, "Article", edited.LabelSingular)
	// The machine identifier never moves, whatever the labels do.
	assert.Equal(t, "blog-post", edited.DeveloperName)
}

func TestDeleteContentType_FreesDeveloperName(t *testing.T) {
	service := contenttype.NewService(newFakeRepository())
	created := createBlogType(t, service)

	require.NoError(t, service.DeleteContentType(context.Background(), created.ID))

	_, err := service.GetContentType(context.Background(), "blog-post")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// The name is reusable once the original is gone.
	_, err = service.CreateContentType(context.Background(), blogInput())
	assert.NoError(t, err)
}

// # Field Tests

func TestCreateField_DuplicateNameRejected(t *testing.T) {
	service := contenttype.NewService(newFakeRepository())
	created := createBlogType(t, service)

	_, err := service.CreateField(context.Background(), created.ID, contenttype.FieldInput{
		Label:         "Title Again",
		DeveloperName: "title",
		FieldType:     field.TypeSingleLineText,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestCreateField_ChoicesRequiredForSelect(t *testing.T) {
	service := contenttype.NewService(newFakeRepository())
	created := createBlogType(t, service)

	_, err := service.CreateField(context.Background(), created.ID, contenttype.FieldInput{
		Label:     "Status",
		FieldType: field.TypeSingleSelect,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestDeleteField_PrimaryRejected(t *testing.T) {
	service := contenttype.NewService(newFakeRepository())
	created := createBlogType(t, service)

	err := service.DeleteField(context.Background(), created.ID, created.PrimaryFieldID)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestDeleteField_RenumbersDensely(t *testing.T) {
	service := contenttype.NewService(newFakeRepository())
	created := createBlogType(t, service)

	// Delete the middle field ("body", order 1).
	body, found := created.FieldByDeveloperName("body")
	require.True(t, found)
	require.NoError(t, service.DeleteField(context.Background(), created.ID, body.ID))

	reloaded, err := service.GetContentType(context.Background(), created.ID)
	require.NoError(t, err)

	active := reloaded.ActiveFields()
	require.Len(t, active, 2)
	assert.Equal(t, "title", active[0].DeveloperName)
	assert.Equal(t, 0, active[0].FieldOrder)
	assert.Equal(t, "category", active[1].DeveloperName)
	assert.Equal(t, 1, active[1].FieldOrder)
}

func TestReorderField_ClampsAndStaysDense(t *testing.T) {
	service := contenttype.NewService(newFakeRepository())
	created := createBlogType(t, service)

	title, _ := created.FieldByDeveloperName("title")

	// A wildly out-of-range target clamps to the last position.
	ordered, err := service.ReorderField(context.Background(), created.ID, title.ID, 99)
	require.NoError(t, err)

	require.Len(t, ordered, 3)
	assert.Equal(t, "body", ordered[0].DeveloperName)
	assert.Equal(t, "category", ordered[1].DeveloperName)
	assert.Equal(t, "title", ordered[2].DeveloperName)
	for index, definition := range ordered {
		assert.Equal(t, index, definition.FieldOrder)
	}

	// Negative targets clamp to the front.
	ordered, err = service.ReorderField(context.Background(), created.ID, title.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, "title", ordered[0].DeveloperName)
}

func TestEditField_IdentityImmutable(t *testing.T) {
	service := contenttype.NewService(newFakeRepository())
	created := createBlogType(t, service)

	body, _ := created.FieldByDeveloperName("body")

	edited, err := service.EditField(context.Background(), created.ID, body.ID, contenttype.EditFieldInput{
		Label:      "Article Body",
		IsRequired: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Article Body", edited.Label)
	assert.True(t, edited.IsRequired)
	assert.Equal(t, "body", edited.DeveloperName)
	assert.Equal(t, field.TypeLongText, edited.FieldType)
}
