package services

import (
	"encoding/base64"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
)

// imageRef prefers the hosted URL and falls back to an inline data URI.
func imageRef(url string, data []byte) string {
	if url != "" {
		return url
	}
	if len(data) == 0 {
		return ""
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
}

func toCustomerResponse(c *models.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{AccountProfile: dto.AccountProfile{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		DoorNo:        c.DoorNo,
		AddressLine:   c.AddressLine,
		City:          c.City,
		State:         c.State,
		Pincode:       c.Pincode,
		Country:       c.Country,
		Latitude:      c.Latitude,
		Longitude:     c.Longitude,
		Verified:      c.Verified,
		Role:          c.Role,
		EmailVerified: c.EmailVerified,
		ProfileImage:  imageRef(c.ProfileImageURL, c.ProfileImage),
		CreatedAt:     c.CreatedAt,
	}}
}

func toProviderResponse(p *models.Provider) dto.ProviderResponse {
	return dto.ProviderResponse{
		AccountProfile: dto.AccountProfile{
			ID:            p.ID,
			Name:          p.Name,
			Email:         p.Email,
			Phone:         p.Phone,
			DoorNo:        p.DoorNo,
			AddressLine:   p.AddressLine,
			City:          p.City,
			State:         p.State,
			Pincode:       p.Pincode,
			Country:       p.Country,
			Latitude:      p.Latitude,
			Longitude:     p.Longitude,
			Verified:      p.Verified,
			Role:          p.Role,
			EmailVerified: p.EmailVerified,
			ProfileImage:  imageRef(p.ProfileImageURL, p.ProfileImage),
			CreatedAt:     p.CreatedAt,
		},
		ServiceType: p.ServiceType,
		Price:       p.Price,
	}
}

func toProviderResponses(list []models.Provider) []dto.ProviderResponse {
	out := make([]dto.ProviderResponse, 0, len(list))
	for i := range list {
		out = append(out, toProviderResponse(&list[i]))
	}
	return out
}

func toBookingResponse(b *models.Booking) dto.BookingResponse {
	resp := dto.BookingResponse{
		ID:               b.ID,
		ServiceID:        b.ServiceID,
		ServiceName:      b.ServiceName,
		Date:             b.BookingDate,
		Time:             b.BookingTime,
		Status:           string(b.Status),
		Notes:            b.Notes,
		TotalAmount:      b.TotalAmount,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
		CompletedAt:      b.CompletedAt,
		CancelledAt:      b.CancelledAt,
		CustomerID:       b.CustomerID,
		ProviderBookerID: b.ProviderBookerID,
		ProviderID:       b.ProviderID,
	}
	if c := b.Customer; c != nil {
		resp.CustomerName = c.Name
		resp.CustomerPhone = c.Phone
		resp.CustomerEmail = c.Email
		resp.CustomerProfileImage = imageRef(c.ProfileImageURL, c.ProfileImage)
	}
	if pb := b.ProviderBooker; pb != nil {
		resp.ProviderBookerName = pb.Name
		resp.ProviderBookerPhone = pb.Phone
		resp.ProviderBookerEmail = pb.Email
		resp.ProviderBookerProfileImage = imageRef(pb.ProfileImageURL, pb.ProfileImage)
	}
	if p := b.Provider; p != nil {
		resp.ProviderName = p.Name
		resp.ProviderPhone = p.Phone
		resp.ProviderEmail = p.Email
		resp.ProviderProfileImage = imageRef(p.ProfileImageURL, p.ProfileImage)
	}
	return resp
}

func toBookingResponses(list []models.Booking) []dto.BookingResponse {
	out := make([]dto.BookingResponse, 0, len(list))
	for i := range list {
		out = append(out, toBookingResponse(&list[i]))
	}
	return out
}

func toServiceResponse(s *models.Service) dto.ServiceResponse {
	resp := dto.ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CategoryID:  s.CategoryID,
		ProviderID:  s.ProviderID,
		Price:       s.Price,
		City:        s.City,
		State:       s.State,
		Pincode:     s.Pincode,
		Rating:      s.Rating,
		ReviewCount: s.ReviewCount,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Category != nil {
		resp.CategoryName = s.Category.Name
	}
	if s.Provider != nil {
		resp.ProviderName = s.Provider.Name
		resp.ProviderVerified = s.Provider.Verified
	}
	return resp
}

func toServiceResponses(list []models.Service) []dto.ServiceResponse {
	out := make([]dto.ServiceResponse, 0, len(list))
	for i := range list {
		out = append(out, toServiceResponse(&list[i]))
	}
	return out
}

func toRatingResponse(r *models.Rating) dto.RatingResponse {
	resp := dto.RatingResponse{
		ID:         r.ID,
		ServiceID:  r.ServiceID,
		BookingID:  r.BookingID,
		CustomerID: r.CustomerID,
		Stars:      r.Stars,
		Review:     r.Review,
		CreatedAt:  r.CreatedAt,
	}
	if r.Customer != nil {
		resp.CustomerName = r.Customer.Name
	}
	return resp
}
