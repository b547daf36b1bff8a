// Copyright (c) 2026 Raytha. All rights reserved.

/*
Package template implements web and email templates plus the variable
surface the templating editor offers.

Templates are revisioned on every content edit: the new state is snapshot
into the generic revision log, and reverting appends a further revision
rather than rewriting history.
*/
package template

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contenttype"
	"github.com/RaythaHQ/raytha-sub000/internal/core/revision"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/ctxutil"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/validate"
	"github.com/RaythaHQ/raytha-sub000/pkg/slug"
	"github.com/RaythaHQ/raytha-sub000/pkg/uuidv7"
)

// Validation field identifiers surfaced in error details.
const (
	FieldLabel         = "label"
	FieldDeveloperName = "developer_name"
	FieldContent       = "content"
	FieldSubject       = "subject"
)

// Service orchestrates template management and revisioning.
type Service struct {
	repo      Repository
	typeRepo  contenttype.Repository
	revisions revision.Repository
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(repo Repository, typeRepo contenttype.Repository, revisions revision.Repository) *Service {
	return &Service{repo: repo, typeRepo: typeRepo, revisions: revisions}
}

// # Inputs

// CreateWebTemplateInput carries a new web template.
type CreateWebTemplateInput struct {
	Label            string  `json:"label"`
	DeveloperName    string  `json:"developer_name"`
	Content          string  `json:"content"`
	ParentTemplateID *string `json:"parent_template_id"`
}

// EditWebTemplateInput carries a web template content edit. Developer
// names are immutable.
type EditWebTemplateInput struct {
	Label   string `json:"label"`
	Content string `json:"content"`
}

// EditEmailTemplateInput carries an email template edit.
type EditEmailTemplateInput struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
	Cc      string `json:"cc"`
	Bcc     string `json:"bcc"`
}

// Revision snapshot shapes. Stored as JSON in the generic revision log.
type webTemplateSnapshot struct {
	Label   string `json:"label"`
	Content string `json:"content"`
}

type emailTemplateSnapshot struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
	Cc      string `json:"cc"`
	Bcc     string `json:"bcc"`
}

// # Web Templates

// GetWebTemplate fetches a single web template by id.
func (service *Service) GetWebTemplate(context context.Context, id string) (*WebTemplate, error) {
	return service.repo.FindWebTemplateByID(context, id)
}

// GetWebTemplateByDeveloperName fetches a single web template by its
// developer name.
func (service *Service) GetWebTemplateByDeveloperName(context context.Context, developerName string) (*WebTemplate, error) {
	return service.repo.FindWebTemplateByDeveloperName(context, developerName)
}

// ListWebTemplates retrieves a paginated collection of web templates.
func (service *Service) ListWebTemplates(context context.Context, limit, offset int) ([]*WebTemplate, int, error) {
	return service.repo.ListWebTemplates(context, limit, offset)
}

// CreateWebTemplate creates a web template and snapshots its initial
// content as the first revision.
func (service *Service) CreateWebTemplate(context context.Context, input CreateWebTemplateInput) (*WebTemplate, error) {
	developerName := input.DeveloperName
	if developerName == "" {
		developerName = slug.From(input.Label)
	}

	validator := &validate.Validator{}
	validator.Required(FieldLabel, input.Label).MaxLen(FieldLabel, input.Label, 120)
	validator.DeveloperName(FieldDeveloperName, developerName)
	validator.Required(FieldContent, input.Content)
	validateTemplateSyntax(validator, input.Content)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	taken, err := service.repo.ExistsWebTemplateByDeveloperName(context, developerName)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict(fmt.Sprintf("A template named %q already exists", developerName))
	}

	if input.ParentTemplateID != nil {
		if _, err := service.repo.FindWebTemplateByID(context, *input.ParentTemplateID); err != nil {
			return nil, err
		}
	}

	created := &WebTemplate{
		ID:                 uuidv7.New(),
		Label:              input.Label,
		DeveloperName:      developerName,
		Content:            input.Content,
		ParentTemplateID:   input.ParentTemplateID,
		CreatorUserID:      ctxutil.GetActorID(context),
		LastModifierUserID: ctxutil.GetActorID(context),
	}

	if err := service.repo.CreateWebTemplate(context, created); err != nil {
		return nil, err
	}

	if err := service.snapshotWebTemplate(context, created); err != nil {
		return nil, err
	}
	return created, nil
}

// EditWebTemplate updates a web template's label and content. The new
// state is appended to the revision history.
func (service *Service) EditWebTemplate(context context.Context, id string, input EditWebTemplateInput) (*WebTemplate, error) {
	current, err := service.repo.FindWebTemplateByID(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldLabel, input.Label).MaxLen(FieldLabel, input.Label, 120)
	validator.Required(FieldContent, input.Content)
	validateTemplateSyntax(validator, input.Content)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current.Label = input.Label
	current.Content = input.Content
	current.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.UpdateWebTemplate(context, current); err != nil {
		return nil, err
	}

	if err := service.snapshotWebTemplate(context, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteWebTemplate removes a template. Built-in templates cannot be
// deleted.
func (service *Service) DeleteWebTemplate(context context.Context, id string) error {
	current, err := service.repo.FindWebTemplateByID(context, id)
	if err != nil {
		return err
	}
	if current.IsBuiltIn {
		return validate.RequiredError(FieldLabel, "Built-in templates cannot be deleted")
	}
	return service.repo.DeleteWebTemplate(context, id)
}

// RevertWebTemplate adopts a revision's content as the current state and
// appends a new revision recording the revert.
func (service *Service) RevertWebTemplate(context context.Context, id, revisionID string) (*WebTemplate, error) {
	current, err := service.repo.FindWebTemplateByID(context, id)
	if err != nil {
		return nil, err
	}

	record, err := service.revisions.GetByID(context, revisionID)
	if err != nil {
		return nil, err
	}
	if record.ParentType != revision.ParentWebTemplate || record.ParentID != current.ID {
		return nil, apperr.NotFound("Revision for this template")
	}

	var snapshot webTemplateSnapshot
	if err := json.Unmarshal(record.Snapshot, &snapshot); err != nil {
		return nil, fmt.Errorf("template: decode revision snapshot: %w", err)
	}

	current.Label = snapshot.Label
	current.Content = snapshot.Content
	current.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.UpdateWebTemplate(context, current); err != nil {
		return nil, err
	}

	if err := service.snapshotWebTemplate(context, current); err != nil {
		return nil, err
	}
	return current, nil
}

// ListWebTemplateRevisions retrieves a template's history, newest first.
func (service *Service) ListWebTemplateRevisions(context context.Context, id string, limit, offset int) ([]*revision.Revision, int, error) {
	if _, err := service.repo.FindWebTemplateByID(context, id); err != nil {
		return nil, 0, err
	}
	return service.revisions.ListByParent(context, revision.ParentWebTemplate, id, limit, offset)
}

// # Email Templates

// GetEmailTemplate fetches a single email template by id.
func (service *Service) GetEmailTemplate(context context.Context, id string) (*EmailTemplate, error) {
	return service.repo.FindEmailTemplateByID(context, id)
}

// ListEmailTemplates retrieves the fixed email template set.
func (service *Service) ListEmailTemplates(context context.Context, limit, offset int) ([]*EmailTemplate, int, error) {
	return service.repo.ListEmailTemplates(context, limit, offset)
}

// EditEmailTemplate updates an email template and appends the new state to
// its revision history.
func (service *Service) EditEmailTemplate(context context.Context, id string, input EditEmailTemplateInput) (*EmailTemplate, error) {
	current, err := service.repo.FindEmailTemplateByID(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldSubject, input.Subject)
	validator.Required(FieldContent, input.Content)
	validateTemplateSyntax(validator, input.Content)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current.Subject = input.Subject
	current.Content = input.Content
	current.Cc = input.Cc
	current.Bcc = input.Bcc
	current.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.UpdateEmailTemplate(context, current); err != nil {
		return nil, err
	}

	if err := service.snapshotEmailTemplate(context, current); err != nil {
		return nil, err
	}
	return current, nil
}

// RevertEmailTemplate adopts a revision's content as the current state and
// appends a new revision recording the revert.
func (service *Service) RevertEmailTemplate(context context.Context, id, revisionID string) (*EmailTemplate, error) {
	current, err := service.repo.FindEmailTemplateByID(context, id)
	if err != nil {
		return nil, err
	}

	record, err := service.revisions.GetByID(context, revisionID)
	if err != nil {
		return nil, err
	}
	if record.ParentType != revision.ParentEmailTemplate || record.ParentID != current.ID {
		return nil, apperr.NotFound("Revision for this template")
	}

	var snapshot emailTemplateSnapshot
	if err := json.Unmarshal(record.Snapshot, &snapshot); err != nil {
		return nil, fmt.Errorf("template: decode revision snapshot: %w", err)
	}

	current.Subject = snapshot.Subject
	current.Content = snapshot.Content
	current.Cc = snapshot.Cc
	current.Bcc = snapshot.Bcc
	current.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.UpdateEmailTemplate(context, current); err != nil {
		return nil, err
	}

	if err := service.snapshotEmailTemplate(context, current); err != nil {
		return nil, err
	}
	return current, nil
}

// ListEmailTemplateRevisions retrieves a template's history, newest first.
func (service *Service) ListEmailTemplateRevisions(context context.Context, id string, limit, offset int) ([]*revision.Revision, int, error) {
	if _, err := service.repo.FindEmailTemplateByID(context, id); err != nil {
		return nil, 0, err
	}
	return service.revisions.ListByParent(context, revision.ParentEmailTemplate, id, limit, offset)
}

// # Variable Surface

// InsertVariables lists the variables available to a template. An empty
// content type identifier yields the reduced built-in surface used by
// built-in templates.
func (service *Service) InsertVariables(context context.Context, contentTypeIdentifier string) ([]InsertVariable, error) {
	if contentTypeIdentifier == "" {
		return InsertVariablesFor(nil), nil
	}

	contentType, err := service.findContentType(context, contentTypeIdentifier)
	if err != nil {
		return nil, err
	}
	return InsertVariablesFor(contentType), nil
}

// # Internals

func (service *Service) findContentType(context context.Context, identifier string) (*contenttype.ContentType, error) {
	if uuidv7.IsValid(identifier) {
		return service.typeRepo.FindByID(context, identifier)
	}
	return service.typeRepo.FindByDeveloperName(context, identifier)
}

func (service *Service) snapshotWebTemplate(context context.Context, current *WebTemplate) error {
	snapshot, err := json.Marshal(webTemplateSnapshot{Label: current.Label, Content: current.Content})
	if err != nil {
		return fmt.Errorf("template: marshal snapshot: %w", err)
	}
	_, err = service.revisions.Create(context, revision.ParentWebTemplate, current.ID, snapshot, ctxutil.GetActorID(context))
	return err
}

func (service *Service) snapshotEmailTemplate(context context.Context, current *EmailTemplate) error {
	snapshot, err := json.Marshal(emailTemplateSnapshot{
		Subject: current.Subject, Content: current.Content,
		Cc: current.Cc, Bcc: current.Bcc,
	})
	if err != nil {
		return fmt.Errorf("template: marshal snapshot: %w", err)
	}
	_, err = service.revisions.Create(context, revision.ParentEmailTemplate, current.ID, snapshot, ctxutil.GetActorID(context))
	return err
}

// validateTemplateSyntax parses the content once so broken placeholder
// syntax is caught at save time, not at page render time.
func validateTemplateSyntax(validator *validate.Validator, content string) {
	if _, err := RenderWeb(content, map[string]any{}); err != nil {
		validator.Fail(FieldContent, "Template syntax is invalid")
	}
}
