package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultSearchRadiusKm = 20.0

type ProviderService struct {
	db       *gorm.DB
	uploader storage.ImageUploader
}

func NewProviderService(db *gorm.DB, uploader storage.ImageUploader) *ProviderService {
	return &ProviderService{db: db, uploader: uploader}
}

func (s *ProviderService) Get(ctx context.Context, id uuid.UUID) (*dto.ProviderResponse, error) {
	p, err := s.load(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	resp := toProviderResponse(p)
	return &resp, nil
}

func (s *ProviderService) ByEmail(ctx context.Context, email string) (*dto.ProviderResponse, error) {
	var p models.Provider
	if err := s.db.WithContext(ctx).First(&p, "email = ?", normalizeEmail(email)).Error; err != nil {
		return nil, notFound(err, ErrProviderNotFound)
	}
	resp := toProviderResponse(&p)
	return &resp, nil
}

func (s *ProviderService) List(ctx context.Context) ([]dto.ProviderResponse, error) {
	return s.find(s.db.WithContext(ctx))
}

func (s *ProviderService) ListByVerified(ctx context.Context, verified bool) ([]dto.ProviderResponse, error) {
	return s.find(s.db.WithContext(ctx).Where("verified = ?", verified))
}

func (s *ProviderService) find(q *gorm.DB) ([]dto.ProviderResponse, error) {
	var list []models.Provider
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return toProviderResponses(list), nil
}

func (s *ProviderService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	db := s.db.WithContext(ctx)
	if _, err := s.load(db, id); err != nil {
		return nil, err
	}

	fields := accountUpdates(&req.UpdateAccountRequest)
	if req.ServiceType != nil && strings.TrimSpace(*req.ServiceType) != "" {
		fields["service_type"] = strings.TrimSpace(*req.ServiceType)
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if err := checkUnique(db, stringField(fields, "email"), stringField(fields, "phone"), id); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := db.Model(&models.Provider{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("failed to update provider: %w", err)
		}
	}
	return s.Get(ctx, id)
}

// SetVerified backs both verify and reject.
func (s *ProviderService) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*dto.ProviderResponse, error) {
	res := s.db.WithContext(ctx).Model(&models.Provider{}).Where("id = ?", id).Update("verified", verified)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrProviderNotFound
	}
	return s.Get(ctx, id)
}

func (s *ProviderService) UploadProfileImage(ctx context.Context, id uuid.UUID, data []byte) (*dto.ProviderResponse, error) {
	db := s.db.WithContext(ctx)
	if _, err := s.load(db, id); err != nil {
		return nil, err
	}
	fields, err := storeProfileImage(ctx, s.uploader, "provider", id, data)
	if err != nil {
		return nil, err
	}
	if err := db.Model(&models.Provider{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to save profile image: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *ProviderService) ImageCheck(ctx context.Context, id uuid.UUID) (*dto.ImageCheckResponse, error) {
	p, err := s.load(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return &dto.ImageCheckResponse{
		ProviderID:     &p.ID,
		Name:           p.Name,
		HasImage:       len(p.ProfileImage) > 0 || p.ProfileImageURL != "",
		ImageSizeBytes: len(p.ProfileImage),
		ImageURL:       p.ProfileImageURL,
	}, nil
}

// Delete removes the provider with their listings, bookings made or received,
// ratings on those listings and sessions.
func (s *ProviderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.load(tx, id)
		if err != nil {
			return err
		}

		var bookings []models.Booking
		if err := tx.Where("(provider_id = ? OR provider_booker_id = ?)", id, id).Find(&bookings).Error; err != nil {
			return err
		}
		if err := deleteBookings(tx, bookings); err != nil {
			return err
		}

		serviceIDs := tx.Model(&models.Service{}).Select("id").Where("provider_id = ?", id)
		if err := tx.Where("service_id IN (?)", serviceIDs).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("provider_id = ?", id).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(p).Error
	})
}

// Search matches providers whose serviceType, addressLine and city contain
// the given terms, ignoring case. Blank terms are skipped.
func (s *ProviderService) Search(ctx context.Context, service, area, city string) ([]dto.ProviderResponse, error) {
	q := s.db.WithContext(ctx)
	q = containsFold(q, "service_type", service)
	q = containsFold(q, "address_line", area)
	q = containsFold(q, "city", city)
	return s.find(q)
}

func (s *ProviderService) ByCity(ctx context.Context, city string) ([]dto.ProviderResponse, error) {
	return s.find(s.db.WithContext(ctx).Where("LOWER(city) = ?", strings.ToLower(strings.TrimSpace(city))))
}

func (s *ProviderService) ByServiceType(ctx context.Context, serviceType string) ([]dto.ProviderResponse, error) {
	return s.find(s.db.WithContext(ctx).Where("LOWER(service_type) = ?", strings.ToLower(strings.TrimSpace(serviceType))))
}

func (s *ProviderService) ByServiceTypeAndCity(ctx context.Context, serviceType, city string) ([]dto.ProviderResponse, error) {
	return s.find(s.db.WithContext(ctx).
		Where("LOWER(service_type) = ? AND LOWER(city) = ?",
			strings.ToLower(strings.TrimSpace(serviceType)), strings.ToLower(strings.TrimSpace(city))))
}

func (s *ProviderService) DistinctCities(ctx context.Context) ([]string, error) {
	return s.distinct(s.db.WithContext(ctx), "city")
}

func (s *ProviderService) DistinctServiceTypes(ctx context.Context) ([]string, error) {
	return s.distinct(s.db.WithContext(ctx), "service_type")
}

func (s *ProviderService) DistinctAreas(ctx context.Context, city string) ([]string, error) {
	q := s.db.WithContext(ctx)
	if strings.TrimSpace(city) != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(strings.TrimSpace(city)))
	}
	return s.distinct(q, "address_line")
}

func (s *ProviderService) distinct(q *gorm.DB, column string) ([]string, error) {
	var values []string
	err := q.Model(&models.Provider{}).
		Where(column+" IS NOT NULL AND "+column+" <> ''").
		Distinct().
		Order(column).
		Pluck(column, &values).Error
	return values, err
}

// Nearby returns providers with coordinates within radiusKm of (lat, lon),
// closest first, each carrying its distance and active listing count.
func (s *ProviderService) Nearby(ctx context.Context, lat, lon, radiusKm float64, verifiedOnly bool) ([]dto.ProviderResponse, error) {
	if radiusKm <= 0 {
		radiusKm = DefaultSearchRadiusKm
	}
	db := s.db.WithContext(ctx)

	q := db.Where("latitude IS NOT NULL AND longitude IS NOT NULL")
	if verifiedOnly {
		q = q.Where("verified = ?", true)
	}
	var candidates []models.Provider
	if err := q.Find(&candidates).Error; err != nil {
		return nil, err
	}

	out := make([]dto.ProviderResponse, 0, len(candidates))
	ids := make([]uuid.UUID, 0, len(candidates))
	for i := range candidates {
		p := &candidates[i]
		d := haversineKm(lat, lon, *p.Latitude, *p.Longitude)
		if d > radiusKm {
			continue
		}
		resp := toProviderResponse(p)
		dist := float64(int(d*100+0.5)) / 100
		resp.Distance = &dist
		out = append(out, resp)
		ids = append(ids, p.ID)
	}
	if len(out) == 0 {
		return out, nil
	}

	counts, err := activeServiceCounts(db, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		n := counts[out[i].ID]
		out[i].ActiveServiceCount = &n
	}

	sort.SliceStable(out, func(i, j int) bool { return *out[i].Distance < *out[j].Distance })
	return out, nil
}

func activeServiceCounts(db *gorm.DB, providerIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		ProviderID uuid.UUID
		Count      int64
	}
	err := db.Model(&models.Service{}).
		Select("provider_id, COUNT(*) AS count").
		Where("provider_id IN ? AND is_active = ?", providerIDs, true).
		Group("provider_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.ProviderID] = r.Count
	}
	return counts, nil
}

func (s *ProviderService) load(db *gorm.DB, id uuid.UUID) (*models.Provider, error) {
	var p models.Provider
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrProviderNotFound)
	}
	return &p, nil
}

// containsFold adds a case-insensitive substring filter when term is not blank.
func containsFold(q *gorm.DB, column, term string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" {
		return q
	}
	return q.Where("LOWER("+column+") LIKE ? ESCAPE '\\'", likePattern(term))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern lowercases term and escapes LIKE wildcards so it only matches
// itself as a substring. Use with ESCAPE '\'.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}
