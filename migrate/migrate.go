// Package migrate batch-imports local markdown articles into the remote
// store: frontmatter becomes author/category/tag rows, the body becomes
// the article content, everything keyed by slug so reruns are idempotent.
package migrate

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"aicompass/supabase"
)

// Report is the batch outcome: row counts per table plus per-file errors.
// A failed file never aborts the batch.
type Report struct {
	Inserted   int      `json:"inserted"`
	Updated    int      `json:"updated"`
	Authors    int      `json:"authors"`
	Categories int      `json:"categories"`
	Tags       int      `json:"tags"`
	Errors     []string `json:"errors"`
}

// Migrator runs the article migration against the service-role client,
// the only part of the application allowed to write these tables.
type Migrator struct {
	client *supabase.Client
	dir    string
}

// New creates a Migrator reading markdown from dir.
func New(client *supabase.Client, dir string) *Migrator {
	return &Migrator{client: client, dir: dir}
}

var headingRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// Run migrates every .md/.mdc file in the directory and returns the
// batch report. Only an unreadable directory is a hard error.
func (m *Migrator) Run(ctx context.Context) (*Report, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("migrate: read %s: %w", m.dir, err)
	}

	report := &Report{Errors: []string{}}
	for _, e := range entries {
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if e.IsDir() || (ext != ".md" && ext != ".mdc") {
			continue
		}
		slug := strings.TrimSuffix(name, filepath.Ext(name))
		if err := m.migrateFile(ctx, slug, filepath.Join(m.dir, name), report); err != nil {
			log.Printf("migrate: %s: %v", name, err)
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", name, err))
		}
	}
	return report, nil
}

func (m *Migrator) migrateFile(ctx context.Context, slug, path string, report *Report) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	block, body := splitFrontmatter(string(raw))
	fm := parseFrontmatter(block)

	title := stringValue(fm, "title")
	if title == "" {
		if match := headingRe.FindStringSubmatch(body); match != nil {
			title = strings.TrimSpace(match[1])
		}
	}

	authorID, err := m.ensureAuthor(ctx, stringValue(fm, "author"), report)
	if err != nil {
		return err
	}
	categoryID, err := m.ensureCategory(ctx, stringValue(fm, "category"), report)
	if err != nil {
		return err
	}
	tagIDs, err := m.ensureTags(ctx, listValue(fm, "tags"), report)
	if err != nil {
		return err
	}

	payload := map[string]any{
		"slug":        slug,
		"title":       title,
		"description": stringValue(fm, "description"),
		"content_md":  body,
		"author_id":   nullable(authorID),
		"category_id": nullable(categoryID),
		"status":      "published",
	}
	if date := stringValue(fm, "date"); date != "" {
		payload["created_at"] = date
	}

	articleID, err := m.upsertArticle(ctx, slug, payload, report)
	if err != nil {
		return err
	}
	return m.linkTags(ctx, articleID, tagIDs)
}

type idRow struct {
	ID string `json:"id"`
}

// ensureAuthor finds the author by name or creates it, counting
// creations in the report. An empty name yields no author.
func (m *Migrator) ensureAuthor(ctx context.Context, name string, report *Report) (string, error) {
	if name == "" {
		return "", nil
	}
	id, created, err := m.getOrCreate(ctx, "authors",
		url.Values{"name": {"eq." + name}},
		map[string]any{"name": name})
	if err != nil {
		return "", err
	}
	if created {
		report.Authors++
	}
	return id, nil
}

func (m *Migrator) ensureCategory(ctx context.Context, name string, report *Report) (string, error) {
	if name == "" {
		return "", nil
	}
	slug := Slugify(name)
	id, created, err := m.getOrCreate(ctx, "categories",
		url.Values{"slug": {"eq." + slug}},
		map[string]any{"name": name, "slug": slug})
	if err != nil {
		return "", err
	}
	if created {
		report.Categories++
	}
	return id, nil
}

func (m *Migrator) ensureTags(ctx context.Context, names []string, report *Report) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		slug := Slugify(name)
		id, created, err := m.getOrCreate(ctx, "tags",
			url.Values{"slug": {"eq." + slug}},
			map[string]any{"name": name, "slug": slug})
		if err != nil {
			return nil, err
		}
		if created {
			report.Tags++
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *Migrator) upsertArticle(ctx context.Context, slug string, payload map[string]any, report *Report) (string, error) {
	existing, err := m.lookupID(ctx, "articles", url.Values{"slug": {"eq." + slug}})
	if err != nil {
		return "", err
	}

	if existing == "" {
		var created []idRow
		if err := m.client.Insert(ctx, "articles", payload, &created); err != nil {
			return "", err
		}
		report.Inserted++
		if len(created) == 0 {
			return "", fmt.Errorf("insert articles returned no row")
		}
		return created[0].ID, nil
	}

	var updated []idRow
	if err := m.client.Update(ctx, "articles", url.Values{"slug": {"eq." + slug}}, payload, &updated); err != nil {
		return "", err
	}
	report.Updated++
	if len(updated) > 0 {
		return updated[0].ID, nil
	}
	return existing, nil
}

// linkTags creates missing article_tags rows; existing links are left
// alone so reruns stay idempotent.
func (m *Migrator) linkTags(ctx context.Context, articleID string, tagIDs []string) error {
	if articleID == "" {
		return nil
	}
	for _, tagID := range tagIDs {
		var rows []struct {
			ArticleID string `json:"article_id"`
		}
		q := url.Values{
			"article_id": {"eq." + articleID},
			"tag_id":     {"eq." + tagID},
			"select":     {"article_id"},
			"limit":      {"1"},
		}
		if err := m.client.Get(ctx, "article_tags", q, &rows); err != nil {
			return err
		}
		if len(rows) > 0 {
			continue
		}
		link := map[string]any{"article_id": articleID, "tag_id": tagID}
		if err := m.client.Insert(ctx, "article_tags", link, nil); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migrator) getOrCreate(ctx context.Context, table string, filter url.Values, row map[string]any) (id string, created bool, err error) {
	id, err = m.lookupID(ctx, table, filter)
	if err != nil || id != "" {
		return id, false, err
	}
	var out []idRow
	if err := m.client.Insert(ctx, table, row, &out); err != nil {
		return "", false, err
	}
	if len(out) == 0 {
		return "", false, fmt.Errorf("insert %s returned no row", table)
	}
	return out[0].ID, true, nil
}

func (m *Migrator) lookupID(ctx context.Context, table string, filter url.Values) (string, error) {
	q := url.Values{"select": {"id"}, "limit": {"1"}}
	for k, vs := range filter {
		q[k] = vs
	}
	var rows []idRow
	if err := m.client.Get(ctx, table, q, &rows); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].ID, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
