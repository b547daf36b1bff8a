// Copyright (c) 2026 Raytha. All rights reserved.

package template

import "context"

// Repository is the persistence boundary for web and email templates.
type Repository interface {
	CreateWebTemplate(context context.Context, template *WebTemplate) error
	UpdateWebTemplate(context context.Context, template *WebTemplate) error
	DeleteWebTemplate(context context.Context, id string) error
	FindWebTemplateByID(context context.Context, id string) (*WebTemplate, error)
	FindWebTemplateByDeveloperName(context context.Context, developerName string) (*WebTemplate, error)
	ListWebTemplates(context context.Context, limit, offset int) ([]*WebTemplate, int, error)
	ExistsWebTemplateByDeveloperName(context context.Context, developerName string) (bool, error)

	// Email templates are a fixed set: update only.
	UpdateEmailTemplate(context context.Context, template *EmailTemplate) error
	FindEmailTemplateByID(context context.Context, id string) (*EmailTemplate, error)
	ListEmailTemplates(context context.Context, limit, offset int) ([]*EmailTemplate, int, error)
}
