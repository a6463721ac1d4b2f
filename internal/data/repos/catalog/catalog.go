package catalog

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	types "github.com/yungbote/careermap-backend/internal/domain/catalog"
	"github.com/yungbote/careermap-backend/internal/platform/dbctx"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

type CatalogRepo interface {
	CreateCourses(dbc dbctx.Context, rows []*types.Course) ([]*types.Course, error)
	CreateOrganizations(dbc dbctx.Context, rows []*types.Organization) ([]*types.Organization, error)

	// SearchCourses matches term case-insensitively against subject and description.
	SearchCourses(dbc dbctx.Context, term string, limit int) ([]*types.Course, error)
	// SearchOrganizations matches term case-insensitively against name and description.
	SearchOrganizations(dbc dbctx.Context, term string, limit int) ([]*types.Organization, error)

	// NearestCourses ranks embedded courses by cosine similarity to vec, descending.
	NearestCourses(dbc dbctx.Context, vec []float32, k int) ([]types.ScoredCourse, error)
	NearestOrganizations(dbc dbctx.Context, vec []float32, k int) ([]types.ScoredOrganization, error)
}

type catalogRepo struct {
	db        *gorm.DB
	log       *logger.Logger
	useVector bool
}

// NewCatalogRepo builds the repo. useVector selects pgvector ranking in SQL;
// otherwise similarity is computed in process over the stored JSON embeddings.
func NewCatalogRepo(db *gorm.DB, baseLog *logger.Logger, useVector bool) CatalogRepo {
	return &catalogRepo{db: db, log: baseLog.With("repo", "CatalogRepo"), useVector: useVector}
}

func (r *catalogRepo) CreateCourses(dbc dbctx.Context, rows []*types.Course) ([]*types.Course, error) {
	if len(rows) == 0 {
		return []*types.Course{}, nil
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *catalogRepo) CreateOrganizations(dbc dbctx.Context, rows []*types.Organization) ([]*types.Organization, error) {
	if len(rows) == 0 {
		return []*types.Organization{}, nil
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *catalogRepo) SearchCourses(dbc dbctx.Context, term string, limit int) ([]*types.Course, error) {
	out := []*types.Course{}
	pattern := likePattern(term)
	if pattern == "" || limit <= 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("LOWER(subject) LIKE ? OR LOWER(course_description) LIKE ?", pattern, pattern).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepo) SearchOrganizations(dbc dbctx.Context, term string, limit int) ([]*types.Organization, error) {
	out := []*types.Organization{}
	pattern := likePattern(term)
	if pattern == "" || limit <= 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type scoredCourseRow struct {
	types.Course `gorm:"embedded"`
	Similarity   float64 `gorm:"column:similarity"`
}

type scoredOrganizationRow struct {
	types.Organization `gorm:"embedded"`
	Similarity         float64 `gorm:"column:similarity"`
}

func (r *catalogRepo) NearestCourses(dbc dbctx.Context, vec []float32, k int) ([]types.ScoredCourse, error) {
	out := []types.ScoredCourse{}
	if len(vec) == 0 || k <= 0 {
		return out, nil
	}
	if r.useVector {
		var rows []scoredCourseRow
		err := dbc.DB(r.db).Raw(`
			SELECT *, 1 - ((embedding::text)::vector <=> ?::vector) AS similarity
			FROM catalog_course
			WHERE embedding IS NOT NULL
			ORDER BY similarity DESC, created_at ASC, id ASC
			LIMIT ?`, vectorLiteral(vec), k).Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for i := range rows {
			c := rows[i].Course
			out = append(out, types.ScoredCourse{Course: &c, Similarity: rows[i].Similarity})
		}
		return out, nil
	}

	var rows []*types.Course
	if err := dbc.DB(r.db).
		Where("embedding IS NOT NULL").
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, c := range rows {
		emb := types.DecodeEmbedding(c.Embedding)
		if len(emb) != len(vec) {
			continue
		}
		out = append(out, types.ScoredCourse{Course: c, Similarity: cosine(vec, emb)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func (r *catalogRepo) NearestOrganizations(dbc dbctx.Context, vec []float32, k int) ([]types.ScoredOrganization, error) {
	out := []types.ScoredOrganization{}
	if len(vec) == 0 || k <= 0 {
		return out, nil
	}
	if r.useVector {
		var rows []scoredOrganizationRow
		err := dbc.DB(r.db).Raw(`
			SELECT *, 1 - ((embedding::text)::vector <=> ?::vector) AS similarity
			FROM catalog_organization
			WHERE embedding IS NOT NULL
			ORDER BY similarity DESC, created_at ASC, id ASC
			LIMIT ?`, vectorLiteral(vec), k).Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for i := range rows {
			o := rows[i].Organization
			out = append(out, types.ScoredOrganization{Organization: &o, Similarity: rows[i].Similarity})
		}
		return out, nil
	}

	var rows []*types.Organization
	if err := dbc.DB(r.db).
		Where("embedding IS NOT NULL").
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, o := range rows {
		emb := types.DecodeEmbedding(o.Embedding)
		if len(emb) != len(vec) {
			continue
		}
		out = append(out, types.ScoredOrganization{Organization: o, Similarity: cosine(vec, emb)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func likePattern(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return ""
	}
	term = strings.NewReplacer("%", "", "_", "").Replace(term)
	return "%" + term + "%"
}

func vectorLiteral(vec []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

// cosine returns 0 when either vector has zero magnitude.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
