package app

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/promptiverse/internal/prompts"
	"github.com/JaimeStill/promptiverse/internal/styles"
	"github.com/JaimeStill/promptiverse/pkg/document"
	"github.com/JaimeStill/promptiverse/pkg/pagination"
)

const recentPrompts = 5

type pager struct {
	Page       int
	TotalPages int
	Prev       string
	Next       string
}

func newPager(path string, values url.Values, page, totalPages int) pager {
	link := func(n int) string {
		q := url.Values{}
		for k, v := range values {
			q[k] = v
		}
		q.Del("skip")
		q.Set("page", strconv.Itoa(n))
		return path + "?" + q.Encode()
	}

	p := pager{Page: page, TotalPages: totalPages}
	if page > 1 {
		p.Prev = link(page - 1)
	}
	if page < totalPages {
		p.Next = link(page + 1)
	}
	return p
}

type modalCount struct {
	Type  prompts.ModalType
	Count int
}

type dashboardData struct {
	Stats      *prompts.Stats
	StyleTotal int
	Modal      []modalCount
}

func (v *views) dashboard(r *http.Request) (any, error) {
	var (
		stats     *prompts.Stats
		styleList *pagination.PageResult[styles.StyleProfile]
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		stats, err = v.prompts.Stats(ctx, recentPrompts)
		return err
	})
	g.Go(func() error {
		var err error
		styleList, err = v.styles.List(ctx, pagination.PageRequest{Page: 1, PageSize: 1}, styles.Filters{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	modal := make([]modalCount, 0, len(prompts.ModalTypes()))
	for _, m := range prompts.ModalTypes() {
		modal = append(modal, modalCount{Type: m, Count: stats.ByModalType[m]})
	}

	return dashboardData{
		Stats:      stats,
		StyleTotal: styleList.Total,
		Modal:      modal,
	}, nil
}

type promptRow struct {
	Title       string
	Description string
	ModalType   prompts.ModalType
	StyleID     string
	StyleLabel  string
	Tags        []string
	UpdatedAt   time.Time
}

type modalOption struct {
	Value    prompts.ModalType
	Selected bool
}

type promptListData struct {
	Search     string
	ModalTypes []modalOption
	Rows       []promptRow
	Pager      pager
}

func (v *views) promptList(r *http.Request) (any, error) {
	values := r.URL.Query()
	page := pagination.PageRequestFromQuery(values, v.pagination)
	filters := prompts.FiltersFromQuery(values)

	result, err := v.prompts.List(r.Context(), page, filters)
	if err != nil {
		return nil, err
	}

	options := make([]modalOption, 0, len(prompts.ModalTypes()))
	for _, m := range prompts.ModalTypes() {
		options = append(options, modalOption{
			Value:    m,
			Selected: filters.ModalType != nil && *filters.ModalType == m,
		})
	}

	rows := make([]promptRow, 0, len(result.Data))
	for _, p := range result.Data {
		row := promptRow{
			Title:     p.Title,
			ModalType: p.ModalType,
			Tags:      p.Tags,
			UpdatedAt: p.UpdatedAt,
		}
		if p.Description != nil {
			row.Description = *p.Description
		}
		if p.StyleProfileID != nil {
			row.StyleID = *p.StyleProfileID
			row.StyleLabel = row.StyleID
			if p.StyleName != nil {
				row.StyleLabel = *p.StyleName
			}
		}
		rows = append(rows, row)
	}

	return promptListData{
		Search:     values.Get("search"),
		ModalTypes: options,
		Rows:       rows,
		Pager:      newPager(v.basePath+"/prompts", values, result.Page, result.TotalPages),
	}, nil
}

type styleListData struct {
	Search string
	Tags   string
	Page   *pagination.PageResult[styles.StyleProfile]
	Pager  pager
}

func (v *views) styleList(r *http.Request) (any, error) {
	values := r.URL.Query()
	page := pagination.PageRequestFromQuery(values, v.pagination)

	result, err := v.styles.List(r.Context(), page, styles.FiltersFromQuery(values))
	if err != nil {
		return nil, err
	}

	return styleListData{
		Search: values.Get("search"),
		Tags:   strings.Join(values["tags"], ","),
		Page:   result,
		Pager:  newPager(v.basePath+"/styles", values, result.Page, result.TotalPages),
	}, nil
}

type leaf struct {
	Path  string
	Value string
}

type sectionData struct {
	Name   string
	Fields []leaf
}

type styleDetailData struct {
	Style     *styles.StyleProfile
	Sections  []sectionData
	Canonical string
}

func (v *views) styleDetail(r *http.Request) (any, error) {
	style, err := v.styles.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		return nil, err
	}

	canonical, err := document.Canonical(style.Document())
	if err != nil {
		return nil, err
	}

	sections := make([]sectionData, 0, len(styles.Sections))
	for _, name := range styles.Sections {
		sections = append(sections, sectionData{
			Name:   name,
			Fields: flatten(nil, style.Section(name)),
		})
	}

	return styleDetailData{
		Style:     style,
		Sections:  sections,
		Canonical: string(canonical),
	}, nil
}

// flatten lists the leaves of m in sorted key order as dotted paths.
func flatten(prefix document.Path, m document.Mapping) []leaf {
	var out []leaf
	for _, key := range m.Keys() {
		path := append(prefix[:len(prefix):len(prefix)], key)
		if child, ok := m[key].(document.Mapping); ok {
			out = append(out, flatten(path, child)...)
			continue
		}
		out = append(out, leaf{Path: path.String(), Value: describe(m[key])})
	}
	return out
}

func describe(v document.Value) string {
	switch t := v.(type) {
	case document.Scalar:
		if t.IsNull() {
			return "null"
		}
		return fmt.Sprint(t.Any())
	case document.List:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = describe(item)
		}
		return strings.Join(parts, ", ")
	case document.WeightedList:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = fmt.Sprintf("%s (%+.1f)", e.Value, e.Weight)
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
