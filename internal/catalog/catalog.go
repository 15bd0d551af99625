// Package catalog holds the plant catalog served to search clients.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/v2/mapping"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"herbalsearch/internal/domain"
)

// ErrNotFound is returned for plant IDs the catalog does not hold
var ErrNotFound = errors.New("plant not found")

// substringAnalyzer indexes a whole field as one lowercased token, so a
// wildcard query on it behaves like a case-insensitive substring match
const substringAnalyzer = "lower_keyword"

// searchFields are matched against the search term
var searchFields = []string{"name", "scientific_name", "description"}

// Catalog is an in-memory plant catalog with a bleve index over the searchable fields
type Catalog struct {
	index  bleve.Index
	plants map[int]domain.Plant
	ids    []int
}

// indexDoc is the document structure indexed by bleve
type indexDoc struct {
	Name           string `json:"name"`
	ScientificName string `json:"scientific_name"`
	Description    string `json:"description"`
}

// New indexes plants. Plants without an ID get the next free one; duplicate IDs are rejected.
func New(plants []domain.Plant) (*Catalog, error) {
	indexMapping, err := buildIndexMapping()
	if err != nil {
		return nil, err
	}
	idx, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("create bleve index: %w", err)
	}

	c := &Catalog{
		index:  idx,
		plants: make(map[int]domain.Plant, len(plants)),
	}
	if err := c.load(plants); err != nil {
		_ = idx.Close()
		return nil, err
	}
	return c, nil
}

func buildIndexMapping() (*mapping.IndexMappingImpl, error) {
	indexMapping := bleve.NewIndexMapping()
	err := indexMapping.AddCustomAnalyzer(substringAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     single.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("register analyzer: %w", err)
	}

	docMapping := bleve.NewDocumentMapping()
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = substringAnalyzer
	textField.Store = false
	textField.IncludeInAll = false
	for _, field := range searchFields {
		docMapping.AddFieldMappingsAt(field, textField)
	}

	indexMapping.DefaultMapping = docMapping
	return indexMapping, nil
}

func (c *Catalog) load(plants []domain.Plant) error {
	next := 1
	for _, p := range plants {
		if p.ID >= next {
			next = p.ID + 1
		}
	}

	categoryIDs := make(map[string]int)
	batch := c.index.NewBatch()
	for _, p := range plants {
		if p.ID == 0 {
			p.ID = next
			next++
		}
		if _, dup := c.plants[p.ID]; dup {
			return fmt.Errorf("duplicate plant id %d", p.ID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("plant %d has no name", p.ID)
		}
		normalizeCategory(&p, categoryIDs)
		normalizeImages(&p)

		doc := indexDoc{
			Name:           p.Name,
			ScientificName: p.ScientificName,
			Description:    p.Description,
		}
		if err := batch.Index(strconv.Itoa(p.ID), doc); err != nil {
			return fmt.Errorf("batch index %d: %w", p.ID, err)
		}
		c.plants[p.ID] = p
		c.ids = append(c.ids, p.ID)
	}
	sort.Ints(c.ids)

	if err := c.index.Batch(batch); err != nil {
		return fmt.Errorf("index plants: %w", err)
	}
	return nil
}

// normalizeCategory fills the category name, ID and nested record from whichever is present
func normalizeCategory(p *domain.Plant, ids map[string]int) {
	if p.Category == "" && p.CategoryInfo != nil {
		p.Category = p.CategoryInfo.Name
	}
	if p.Category == "" {
		p.CategoryID = 0
		p.CategoryInfo = nil
		return
	}
	id, ok := ids[p.Category]
	if !ok {
		id = p.CategoryID
		if id == 0 {
			id = len(ids) + 1
		}
		ids[p.Category] = id
	}
	p.CategoryID = id
	p.CategoryInfo = &domain.CategoryInfo{ID: id, Name: p.Category}
}

// normalizeImages keeps the primary image and the image list consistent
func normalizeImages(p *domain.Plant) {
	if len(p.Images) == 0 && p.Image != "" {
		p.Images = []string{p.Image}
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
}

const allCategories = "all"

// Search returns plants whose name, scientific name or description contains
// term and whose category contains category, both ignoring case. Empty
// arguments and the category "all" match everything. Results are ordered by ID.
func (c *Catalog) Search(ctx context.Context, term, category string) ([]domain.Plant, error) {
	term = cleanTerm(term)
	category = strings.ToLower(strings.TrimSpace(category))
	if category == allCategories {
		category = ""
	}

	ids := c.ids
	if term != "" {
		matched, err := c.match(ctx, term)
		if err != nil {
			return nil, err
		}
		ids = matched
	}

	out := make([]domain.Plant, 0, len(ids))
	for _, id := range ids {
		p := c.plants[id]
		if category != "" && !strings.Contains(strings.ToLower(p.Category), category) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (c *Catalog) match(ctx context.Context, term string) ([]int, error) {
	pattern := "*" + strings.ToLower(term) + "*"
	fieldQueries := make([]blevequery.Query, 0, len(searchFields))
	for _, field := range searchFields {
		q := bleve.NewWildcardQuery(pattern)
		q.SetField(field)
		fieldQueries = append(fieldQueries, q)
	}
	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(fieldQueries...))
	req.Size = len(c.ids)

	res, err := c.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bleve search: %w", err)
	}

	ids := make([]int, 0, len(res.Hits))
	for _, hit := range res.Hits {
		id, err := strconv.Atoi(hit.ID)
		if err != nil {
			return nil, fmt.Errorf("bad document id %q: %w", hit.ID, err)
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// SearchPlants answers a search the way the plants API does
func (c *Catalog) SearchPlants(ctx context.Context, term string) (*domain.PlantsResponse, error) {
	plants, err := c.Search(ctx, term, "")
	if err != nil {
		return nil, err
	}
	return &domain.PlantsResponse{Plants: plants}, nil
}

// Plant returns the plant with id
func (c *Catalog) Plant(id int) (domain.Plant, error) {
	p, ok := c.plants[id]
	if !ok {
		return domain.Plant{}, fmt.Errorf("plant %d: %w", id, ErrNotFound)
	}
	return p, nil
}

// Len returns the number of plants
func (c *Catalog) Len() int {
	return len(c.ids)
}

// Close releases the index
func (c *Catalog) Close() error {
	return c.index.Close()
}

// cleanTerm drops wildcard syntax so user input is always matched literally
func cleanTerm(term string) string {
	return strings.NewReplacer("*", "", "?", "", `\`, "").Replace(term)
}
