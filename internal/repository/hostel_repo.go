package repository

import (
	"context"
	"fmt"
	"strings"

	"hostelfinder/internal/domain"

	"gorm.io/gorm"
)

type HostelRepository struct {
	db *gorm.DB
}

func NewHostelRepository(db *gorm.DB) *HostelRepository {
	return &HostelRepository{db: db}
}

// HostelFilter narrows Search. Zero values disable a filter.
type HostelFilter struct {
	City      string
	MaxRent   float64
	Amenities []string
}

// Create inserts the hostel with its images and links amenities by name,
// creating amenity rows that do not exist yet.
func (r *HostelRepository) Create(ctx context.Context, h *domain.Hostel, amenityNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		amenities, err := upsertAmenities(tx, amenityNames)
		if err != nil {
			return err
		}
		h.Amenities = amenities

		// amenities already exist at this point, only the join rows are written
		if err := tx.Omit("Owner", "Amenities.*").Create(h).Error; err != nil {
			return fmt.Errorf("create hostel: %w", err)
		}
		return nil
	})
}

func upsertAmenities(tx *gorm.DB, names []string) ([]domain.Amenity, error) {
	out := make([]domain.Amenity, 0, len(names))
	for _, name := range uniqueNames(names) {
		a := domain.Amenity{}
		if err := tx.Where(domain.Amenity{Name: name}).FirstOrCreate(&a).Error; err != nil {
			return nil, fmt.Errorf("upsert amenity %q: %w", name, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func (r *HostelRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Amenities").Preload("Images")
}

func (r *HostelRepository) List(ctx context.Context, skip, limit int) ([]domain.Hostel, error) {
	var out []domain.Hostel
	err := r.withRelations(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list hostels: %w", err)
	}
	return out, nil
}

func (r *HostelRepository) GetByID(ctx context.Context, id int64) (*domain.Hostel, error) {
	var h domain.Hostel
	if err := r.withRelations(ctx).First(&h, id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HostelRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&domain.Hostel{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, fmt.Errorf("count hostels: %w", err)
	}
	return cnt > 0, nil
}

func (r *HostelRepository) FindByPincode(ctx context.Context, pincode string) ([]domain.Hostel, error) {
	var out []domain.Hostel
	err := r.withRelations(ctx).Where("pincode = ?", pincode).Order("id ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("find hostels by pincode: %w", err)
	}
	return out, nil
}

func (r *HostelRepository) FindByCity(ctx context.Context, city string) ([]domain.Hostel, error) {
	var out []domain.Hostel
	err := r.withRelations(ctx).Where("city = ?", city).Order("id ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("find hostels by city: %w", err)
	}
	return out, nil
}

// Search returns hostels matching every non-zero field of f. A hostel must carry
// all requested amenities to match.
func (r *HostelRepository) Search(ctx context.Context, f HostelFilter) ([]domain.Hostel, error) {
	q := r.withRelations(ctx)
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.MaxRent > 0 {
		q = q.Where("rent <= ?", f.MaxRent)
	}
	if names := uniqueNames(f.Amenities); len(names) > 0 {
		sub := r.db.WithContext(ctx).
			Table("hostel_amenities").
			Select("hostel_amenities.hostel_id").
			Joins("JOIN amenities ON amenities.id = hostel_amenities.amenity_id").
			Where("amenities.name IN ?", names).
			Group("hostel_amenities.hostel_id").
			Having("COUNT(DISTINCT amenities.id) = ?", len(names))
		q = q.Where("id IN (?)", sub)
	}

	var out []domain.Hostel
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("search hostels: %w", err)
	}
	return out, nil
}

func (r *HostelRepository) AddImage(ctx context.Context, img *domain.HostelImage) error {
	if err := r.db.WithContext(ctx).Create(img).Error; err != nil {
		return fmt.Errorf("add hostel image: %w", err)
	}
	return nil
}
