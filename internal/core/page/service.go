// Copyright (c) 2026 Raytha. All rights reserved.

/*
Package page serves published content items as rendered HTML pages.

# Architecture

This is the public delivery surface: a route path resolves to a published
content item, the item's web template is rendered against the standard
variable payload, and the result is returned as a full HTML document.
Unpublished items, trashed items, and unknown routes are all the same
thing to an anonymous visitor: not found.
*/
package page

import (
	"context"
	"time"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contentitem"
	"github.com/RaythaHQ/raytha-sub000/internal/core/contenttype"
	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
	"github.com/RaythaHQ/raytha-sub000/internal/core/menu"
	"github.com/RaythaHQ/raytha-sub000/internal/core/template"
	"github.com/RaythaHQ/raytha-sub000/internal/core/view"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/ctxutil"
	"github.com/RaythaHQ/raytha-sub000/pkg/pagination"
)

// ItemResolver resolves route paths to content items. Implemented by
// [contentitem.Service].
type ItemResolver interface {
	GetByRoutePath(context context.Context, routePath string) (*contentitem.ContentItem, error)
	PrimaryDisplayValue(context context.Context, id string) (string, error)
}

// TemplateProvider loads web templates. Implemented by [template.Service].
type TemplateProvider interface {
	GetWebTemplate(context context.Context, id string) (*template.WebTemplate, error)
	GetWebTemplateByDeveloperName(context context.Context, developerName string) (*template.WebTemplate, error)
}

// ViewResolver resolves route paths to published view listings.
// Implemented by [view.Service]. May be nil; view routes are then not
// served.
type ViewResolver interface {
	GetViewByRoutePath(context context.Context, routePath string) (*view.View, error)
	ListItems(context context.Context, id string, params pagination.Params, clientFilter *view.FilterNode, clientSorts []view.Sort) (*view.ListResult, error)
}

// MenuProvider loads the main navigation menu. Implemented by
// [menu.Service].
type MenuProvider interface {
	GetMainMenu(context context.Context) (*menu.NavigationMenu, error)
}

// Organization holds the site-level settings surfaced to templates.
type Organization struct {
	Name       string
	WebsiteURL string
	TimeZone   string
	DateFormat string
}

// RequestInfo carries the request attributes exposed under the Request
// template category.
type RequestInfo struct {
	Path  string
	Query string
	URL   string
}

// Service renders public pages.
type Service struct {
	items     ItemResolver
	views     ViewResolver
	templates TemplateProvider
	menus     MenuProvider
	typeRepo  contenttype.Repository
	org       Organization
	location  *time.Location
}

// NewService constructs a new page [Service].
func NewService(items ItemResolver, views ViewResolver, templates TemplateProvider, menus MenuProvider, typeRepo contenttype.Repository, org Organization, location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		items:     items,
		views:     views,
		templates: templates,
		menus:     menus,
		typeRepo:  typeRepo,
		org:       org,
		location:  location,
	}
}

/*
RenderRoute resolves a route path and renders the owning page.

Description: Route paths are one namespace shared by content items and
published views, so item resolution runs first and a miss falls through to
the view table. An item route must belong to a published item with an
assigned web template; a view route must belong to a published view.
Anything else is apperr.NotFound so the public surface never distinguishes
drafts, trash, and unknown routes. The template payload is the standard
variable surface: organization settings, the requesting user (anonymous or
authenticated), request attributes, the main navigation menu, and either
the item's published document or the view's listing result.

Parameters:
  - context: context.Context
  - routePath: string (Normalized before lookup)
  - request: RequestInfo

Returns:
  - string: The rendered HTML document
  - error: apperr.NotFound, or template render failures
*/
func (service *Service) RenderRoute(context context.Context, routePath string, request RequestInfo) (string, error) {
	normalized := contentitem.NormalizeRoutePath(routePath)

	item, err := service.items.GetByRoutePath(context, normalized)
	if err != nil {
		if service.views != nil && isNotFound(err) {
			return service.renderViewRoute(context, normalized, request)
		}
		return "", err
	}

	if !item.IsPublished || item.WebTemplateID == nil {
		return "", apperr.NotFound("Page")
	}

	webTemplate, err := service.templates.GetWebTemplate(context, *item.WebTemplateID)
	if err != nil {
		return "", err
	}

	contentType, err := service.typeRepo.FindByID(context, item.ContentTypeID)
	if err != nil {
		return "", err
	}

	payload := service.basePayload(context, request)
	payload[template.CategoryContentItem] = service.contentItemData(context, item, contentType)

	return template.RenderWeb(webTemplate.Content, payload)
}

// renderViewRoute serves a published view's listing through the built-in
// web template.
func (service *Service) renderViewRoute(context context.Context, routePath string, request RequestInfo) (string, error) {
	resolved, err := service.views.GetViewByRoutePath(context, routePath)
	if err != nil {
		if isNotFound(err) {
			return "", apperr.NotFound("Page")
		}
		return "", err
	}

	if !resolved.IsPublished {
		return "", apperr.NotFound("Page")
	}

	// ListItems fills in the view's own default page size when the params
	// carry no explicit limit.
	result, err := service.views.ListItems(context, resolved.ID, pagination.Params{Page: 1}, nil, nil)
	if err != nil {
		return "", err
	}

	webTemplate, err := service.templates.GetWebTemplateByDeveloperName(context, template.BuiltInWebTemplateDeveloperName)
	if err != nil {
		return "", err
	}

	payload := service.basePayload(context, request)
	payload[template.CategoryContentItemListResult] = listResultData(result)

	return template.RenderWeb(webTemplate.Content, payload)
}

func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.Code == "NOT_FOUND"
}

// # Variable Payload

// basePayload builds the categories every public page shares. The caller
// adds the surface-specific category on top.
func (service *Service) basePayload(context context.Context, request RequestInfo) map[string]any {
	data := map[string]any{
		template.CategoryCurrentOrganization: map[string]any{
			"OrganizationName": service.org.Name,
			"WebsiteUrl":       service.org.WebsiteURL,
			"TimeZone":         service.org.TimeZone,
			"DateFormat":       service.org.DateFormat,
		},
		template.CategoryCurrentUser: service.currentUserData(context),
		template.CategoryRequest: map[string]any{
			"Path":  request.Path,
			"Query": request.Query,
			"Url":   request.URL,
		},
	}

	if service.menus != nil {
		if mainMenu, err := service.menus.GetMainMenu(context); err == nil {
			data[template.CategoryNavigationMenu] = menuData(mainMenu)
		}
	}

	return data
}

func listResultData(result *view.ListResult) map[string]any {
	items := make([]map[string]any, 0, len(result.Items))
	for _, row := range result.Items {
		items = append(items, map[string]any{
			"Id":          row.ID,
			"RoutePath":   row.RoutePath,
			"IsPublished": row.IsPublished,
			"Fields":      row.Fields,
		})
	}
	return map[string]any{
		"Items":      items,
		"TotalCount": result.Total,
		"PageNumber": 1,
		"PageSize":   result.View.DefaultItemsPerPage,
	}
}

func (service *Service) currentUserData(context context.Context) map[string]any {
	claims := ctxutil.GetAuthUser(context)
	if claims == nil {
		return map[string]any{"Id": "", "Email": "", "IsAuthenticated": false}
	}
	return map[string]any{
		"Id":              claims.UserID,
		"Email":           claims.Email,
		"IsAuthenticated": true,
	}
}

func (service *Service) contentItemData(context context.Context, item *contentitem.ContentItem, contentType *contenttype.ContentType) map[string]any {
	renderContext := field.RenderContext{
		Location:   service.location,
		DateFormat: service.org.DateFormat,
		ChoiceLabel: func(developerName string) string {
			for _, definition := range contentType.ActiveFields() {
				if choice, found := definition.ChoiceByDeveloperName(developerName); found {
					return choice.Label
				}
			}
			return ""
		},
		RelatedTitle: func(contentItemID string) string {
			title, err := service.items.PrimaryDisplayValue(context, contentItemID)
			if err != nil {
				return ""
			}
			return title
		},
	}

	primaryField := ""
	if primary, found := contentType.PrimaryField(); found {
		if value := item.PublishedContent.Get(primary.DeveloperName); value != nil {
			primaryField = value.Render(renderContext)
		}
	}

	return map[string]any{
		"Id":               item.ID,
		"RoutePath":        item.RoutePath,
		"IsPublished":      item.IsPublished,
		"CreatedAt":        item.CreatedAt.In(service.location).Format(service.org.DateFormat),
		"PrimaryField":     primaryField,
		"PublishedContent": template.FieldVariableData(item.PublishedContent, contentType, renderContext),
	}
}

func menuData(mainMenu *menu.NavigationMenu) map[string]any {
	items := make([]map[string]any, 0, len(mainMenu.Items))
	for _, item := range mainMenu.Items {
		if item.IsDisabled {
			continue
		}
		items = append(items, map[string]any{
			"Label":        item.Label,
			"Url":          item.URL,
			"OpenInNewTab": item.OpenInNewTab,
			"CssClassName": item.CSSClassName,
		})
	}
	return map[string]any{
		"Label":     mainMenu.Label,
		"MenuItems": items,
	}
}
