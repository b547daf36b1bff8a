// Copyright (c) 2026 Raytha. All rights reserved.

package template_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contenttype"
	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
	"github.com/RaythaHQ/raytha-sub000/internal/core/revision"
	"github.com/RaythaHQ/raytha-sub000/internal/core/template"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
)

// fakeTemplateRepository is an in-memory Repository for service tests.
type fakeTemplateRepository struct {
	webs   map[string]*template.WebTemplate
	emails map[string]*template.EmailTemplate
}

func newFakeTemplateRepository() *fakeTemplateRepository {
	return &fakeTemplateRepository{
		webs:   make(map[string]*template.WebTemplate),
		emails: make(map[string]*template.EmailTemplate),
	}
}

func (f *fakeTemplateRepository) CreateWebTemplate(_ context.Context, webTemplate *template.WebTemplate) error {
	clone := *webTemplate
	f.webs[webTemplate.ID] = &clone
	return nil
}

func (f *fakeTemplateRepository) UpdateWebTemplate(_ context.Context, webTemplate *template.WebTemplate) error {
	if _, ok := f.webs[webTemplate.ID]; !ok {
		return apperr.NotFound("Template")
	}
	clone := *webTemplate
	f.webs[webTemplate.ID] = &clone
	return nil
}

func (f *fakeTemplateRepository) DeleteWebTemplate(_ context.Context, id string) error {
	if _, ok := f.webs[id]; !ok {
		return apperr.NotFound("Template")
	}
	delete(f.webs, id)
	return nil
}

func (f *fakeTemplateRepository) FindWebTemplateByID(_ context.Context, id string) (*template.WebTemplate, error) {
	stored, ok := f.webs[id]
	if !ok {
		return nil, apperr.NotFound("Template")
	}
	clone := *stored
	return &clone, nil
}

func (f *fakeTemplateRepository) FindWebTemplateByDeveloperName(_ context.Context, developerName string) (*template.WebTemplate, error) {
	for _, stored := range f.webs {
		if stored.DeveloperName == developerName {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Template")
}

func (f *fakeTemplateRepository) ListWebTemplates(_ context.Context, limit, offset int) ([]*template.WebTemplate, int, error) {
	all := make([]*template.WebTemplate, 0, len(f.webs))
	for _, stored := range f.webs {
		all = append(all, stored)
	}
	return all, len(all), nil
}

func (f *fakeTemplateRepository) ExistsWebTemplateByDeveloperName(_ context.Context, developerName string) (bool, error) {
	_, err := f.FindWebTemplateByDeveloperName(context.Background(), developerName)
	return err == nil, nil
}

func (f *fakeTemplateRepository) UpdateEmailTemplate(_ context.Context, emailTemplate *template.EmailTemplate) error {
	if _, ok := f.emails[emailTemplate.ID]; !ok {
		return apperr.NotFound("Template")
	}
	clone := *emailTemplate
	f.emails[emailTemplate.ID] = &clone
	return nil
}

func (f *fakeTemplateRepository) FindEmailTemplateByID(_ context.Context, id string) (*template.EmailTemplate, error) {
	stored, ok := f.emails[id]
	if !ok {
		return nil, apperr.NotFound("Template")
	}
	clone := *stored
	return &clone, nil
}

func (f *fakeTemplateRepository) ListEmailTemplates(_ context.Context, limit, offset int) ([]*template.EmailTemplate, int, error) {
	all := make([]*template.EmailTemplate, 0, len(f.emails))
	for _, stored := range f.emails {
		all = append(all, stored)
	}
	return all, len(all), nil
}

// fakeRevisionRepository records append-only snapshots.
type fakeRevisionRepository struct {
	records []*revision.Revision
}

func (f *fakeRevisionRepository) Create(_ context.Context, parentType revision.ParentType, parentID string, snapshot json.RawMessage, actorID string) (*revision.Revision, error) {
	record := &revision.Revision{
		ID:            fmt.Sprintf("rev-%d", len(f.records)+1),
		ParentType:    parentType,
		ParentID:      parentID,
		Snapshot:      append(json.RawMessage(nil), snapshot...),
		CreatorUserID: actorID,
	}
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeRevisionRepository) GetByID(_ context.Context, id string) (*revision.Revision, error) {
	for _, record := range f.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, apperr.NotFound("Revision")
}

func (f *fakeRevisionRepository) ListByParent(_ context.Context, parentType revision.ParentType, parentID string, limit, offset int) ([]*revision.Revision, int, error) {
	matched := make([]*revision.Revision, 0)
	for index := len(f.records) - 1; index >= 0; index-- {
		record := f.records[index]
		if record.ParentType == parentType && record.ParentID == parentID {
			matched = append(matched, record)
		}
	}
	return matched, len(matched), nil
}

// fakeSchemaRepository serves a single content type for variable lookups.
type fakeSchemaRepository struct {
	contentType *contenttype.ContentType
}

func (f *fakeSchemaRepository) Create(context.Context, *contenttype.ContentType) error { return nil }
func (f *fakeSchemaRepository) Update(context.Context, *contenttype.ContentType) error { return nil }
func (f *fakeSchemaRepository) SoftDelete(context.Context, string, string) error       { return nil }

func (f *fakeSchemaRepository) FindByID(_ context.Context, id string) (*contenttype.ContentType, error) {
	if f.contentType != nil && f.contentType.ID == id {
		return f.contentType, nil
	}
	return nil, apperr.NotFound("Content type")
}

func (f *fakeSchemaRepository) FindByDeveloperName(_ context.Context, developerName string) (*contenttype.ContentType, error) {
	if f.contentType != nil && f.contentType.DeveloperName == developerName {
		return f.contentType, nil
	}
	return nil, apperr.NotFound("Content type")
}

func (f *fakeSchemaRepository) List(context.Context, int, int) ([]*contenttype.ContentType, int, error) {
	return nil, 0, nil
}

func (f *fakeSchemaRepository) ExistsByDeveloperName(context.Context, string) (bool, error) {
	return false, nil
}

func (f *fakeSchemaRepository) CreateField(context.Context, *field.Definition) error { return nil }
func (f *fakeSchemaRepository) UpdateField(context.Context, *field.Definition) error { return nil }
func (f *fakeSchemaRepository) SoftDeleteField(context.Context, string) error        { return nil }

func (f *fakeSchemaRepository) SaveFieldOrder(context.Context, string, []string) error { return nil }

func newTemplateService() (*template.Service, *fakeTemplateRepository, *fakeRevisionRepository) {
	repo := newFakeTemplateRepository()
	revisions := &fakeRevisionRepository{}
	service := template.NewService(repo, &fakeSchemaRepository{contentType: articleType()}, revisions)
	return service, repo, revisions
}

func TestCreateWebTemplateGeneratesNameAndFirstRevision(t *testing.T) {
	service, _, revisions := newTemplateService()

	created, err := service.CreateWebTemplate(context.Background(), template.CreateWebTemplateInput{
		Label:   "Home Page",
		Content: "<h1>{{ ContentItem.PrimaryField }}</h1>",
	})
	require.NoError(t, err)

	assert.Equal(t, "home-page", created.DeveloperName)
	require.Len(t, revisions.records, 1)
	assert.Equal(t, revision.ParentWebTemplate, revisions.records[0].ParentType)
	assert.Equal(t, created.ID, revisions.records[0].ParentID)
}

func TestCreateWebTemplateDuplicateNameConflicts(t *testing.T) {
	service, _, _ := newTemplateService()

	input := template.CreateWebTemplateInput{Label: "Home Page", Content: "<p>ok</p>"}
	_, err := service.CreateWebTemplate(context.Background(), input)
	require.NoError(t, err)

	_, err = service.CreateWebTemplate(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestCreateWebTemplateRejectsBrokenSyntax(t *testing.T) {
	service, _, _ := newTemplateService()

	_, err := service.CreateWebTemplate(context.Background(), template.CreateWebTemplateInput{
		Label:   "Broken",
		Content: "unclosed {{ action",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestEditWebTemplateAppendsRevision(t *testing.T) {
	service, _, revisions := newTemplateService()

	created, err := service.CreateWebTemplate(context.Background(), template.CreateWebTemplateInput{
		Label: "Home Page", Content: "<p>v1</p>",
	})
	require.NoError(t, err)

	edited, err := service.EditWebTemplate(context.Background(), created.ID, template.EditWebTemplateInput{
		Label: "Home Page", Content: "<p>v2</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "<p>v2</p>", edited.Content)
	assert.Len(t, revisions.records, 2)
}

func TestDeleteBuiltInWebTemplateRejected(t *testing.T) {
	service, repo, _ := newTemplateService()

	repo.webs["wt-builtin"] = &template.WebTemplate{
		ID: "wt-builtin", Label: "Base Layout", DeveloperName: "base-layout",
		Content: "<html>{{ ContentItem.PrimaryField }}</html>", IsBuiltIn: true,
	}

	err := service.DeleteWebTemplate(context.Background(), "wt-builtin")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestRevertWebTemplateAppendsRevision(t *testing.T) {
	service, _, revisions := newTemplateService()

	created, err := service.CreateWebTemplate(context.Background(), template.CreateWebTemplateInput{
		Label: "Home Page", Content: "<p>v1</p>",
	})
	require.NoError(t, err)
	firstRevisionID := revisions.records[0].ID

	_, err = service.EditWebTemplate(context.Background(), created.ID, template.EditWebTemplateInput{
		Label: "Home Page", Content: "<p>v2</p>",
	})
	require.NoError(t, err)

	reverted, err := service.RevertWebTemplate(context.Background(), created.ID, firstRevisionID)
	require.NoError(t, err)

	assert.Equal(t, "<p>v1</p>", reverted.Content)
	// History is append-only: the revert adds a third entry.
	assert.Len(t, revisions.records, 3)
}

func TestRevertWebTemplateForeignRevisionNotFound(t *testing.T) {
	service, _, revisions := newTemplateService()

	created, err := service.CreateWebTemplate(context.Background(), template.CreateWebTemplateInput{
		Label: "Home Page", Content: "<p>v1</p>",
	})
	require.NoError(t, err)

	foreign, err := revisions.Create(context.Background(), revision.ParentContentItem, "someone-else", json.RawMessage(`{}`), "")
	require.NoError(t, err)

	_, err = service.RevertWebTemplate(context.Background(), created.ID, foreign.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestEditAndRevertEmailTemplate(t *testing.T) {
	service, repo, revisions := newTemplateService()

	repo.emails["et-welcome"] = &template.EmailTemplate{
		ID: "et-welcome", DeveloperName: "welcome-email",
		Subject: "Welcome", Content: "Hello", IsBuiltIn: true,
	}

	_, err := service.EditEmailTemplate(context.Background(), "et-welcome", template.EditEmailTemplateInput{
		Subject: "Welcome aboard", Content: "Hello {{ CurrentUser.Email }}", Cc: "ops@acme.test",
	})
	require.NoError(t, err)
	firstRevisionID := revisions.records[0].ID

	_, err = service.EditEmailTemplate(context.Background(), "et-welcome", template.EditEmailTemplateInput{
		Subject: "Greetings", Content: "Hi there",
	})
	require.NoError(t, err)

	reverted, err := service.RevertEmailTemplate(context.Background(), "et-welcome", firstRevisionID)
	require.NoError(t, err)

	assert.Equal(t, "Welcome aboard", reverted.Subject)
	assert.Equal(t, "Hello {{ CurrentUser.Email }}", reverted.Content)
	assert.Equal(t, "ops@acme.test", reverted.Cc)
	assert.Len(t, revisions.records, 3)
}

func TestInsertVariablesUsesBoundContentType(t *testing.T) {
	service, _, _ := newTemplateService()

	builtIn, err := service.InsertVariables(context.Background(), "")
	require.NoError(t, err)
	for _, variable := range builtIn {
		assert.NotContains(t, variable.TemplateVariable, "PublishedContent")
	}

	bound, err := service.InsertVariables(context.Background(), "article")
	require.NoError(t, err)
	assert.Contains(t, variablePaths(bound), "ContentItem.PublishedContent.title")
}
