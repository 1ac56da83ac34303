package handlers

import (
	"time"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
)

type TokenResponse struct {
	Token    string `json:"token"`
	IsSeller bool   `json:"isSeller"`
	IsAdmin  bool   `json:"isAdmin"`
	Name     string `json:"name"`
}

type MeDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	IsSeller      bool   `json:"isSeller"`
	IsAdmin       bool   `json:"isAdmin"`
	OriginCountry string `json:"originCountry"`
}

func toMeDTO(u *entity.User) MeDTO {
	return MeDTO{
		ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone,
		IsSeller: u.IsSeller, IsAdmin: u.IsAdmin, OriginCountry: u.OriginCountry,
	}
}

// UserDTO is the admin console row.
type UserDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	IsSeller      bool      `json:"isSeller"`
	IsAdmin       bool      `json:"isAdmin"`
	ListingsCount int       `json:"listingsCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toUserDTO(s entity.UserSummary) UserDTO {
	return UserDTO{
		ID: s.User.ID, Name: s.User.Name, Email: s.User.Email,
		IsSeller: s.User.IsSeller, IsAdmin: s.User.IsAdmin,
		ListingsCount: s.ListingsCount, CreatedAt: s.User.CreatedAt,
	}
}

// SellerDTO is the public view of a listing owner.
type SellerDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	OriginCountry string `json:"originCountry"`
}

type ListingDTO struct {
	ID          string     `json:"id"`
	SellerID    string     `json:"sellerId"`
	Title       string     `json:"title"`
	Desc        string     `json:"desc"`
	Price       float64    `json:"price"`
	MinOrderQty int        `json:"minOrderQty"`
	Stock       int        `json:"stock"`
	ImageURLs   []string   `json:"imageUrls"`
	CreatedAt   time.Time  `json:"createdAt"`
	Seller      *SellerDTO `json:"seller,omitempty"`
}

func toListingDTO(l entity.Listing) ListingDTO {
	urls := l.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	return ListingDTO{
		ID: l.ID, SellerID: l.SellerID, Title: l.Title, Desc: l.Desc, Price: l.Price,
		MinOrderQty: l.MinOrderQty, Stock: l.Stock, ImageURLs: urls, CreatedAt: l.CreatedAt,
	}
}

func toListingDTOs(items []entity.Listing) []ListingDTO {
	out := make([]ListingDTO, 0, len(items))
	for _, l := range items {
		out = append(out, toListingDTO(l))
	}
	return out
}

type InquiryDTO struct {
	ID         string    `json:"id"`
	ListingID  string    `json:"listingId"`
	BuyerName  string    `json:"buyerName"`
	BuyerPhone string    `json:"buyerPhone"`
	BuyerEmail *string   `json:"buyerEmail"`
	Quantity   int       `json:"quantity"`
	Message    *string   `json:"message"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toInquiryDTO(q entity.Inquiry) InquiryDTO {
	return InquiryDTO{
		ID: q.ID, ListingID: q.ListingID, BuyerName: q.BuyerName, BuyerPhone: q.BuyerPhone,
		BuyerEmail: q.BuyerEmail, Quantity: q.Quantity, Message: q.Message,
		Status: string(q.Status), CreatedAt: q.CreatedAt, UpdatedAt: q.UpdatedAt,
	}
}

func toInquiryDTOs(items []entity.Inquiry) []InquiryDTO {
	out := make([]InquiryDTO, 0, len(items))
	for _, q := range items {
		out = append(out, toInquiryDTO(q))
	}
	return out
}

// PageDTO is the paginated envelope payload.
type PageDTO[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Per   int `json:"per"`
	Total int `json:"total"`
}

type ContactDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Company     *string   `json:"company"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	RespondedBy *string   `json:"respondedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toContactDTOs(items []entity.ContactMessage) []ContactDTO {
	out := make([]ContactDTO, 0, len(items))
	for _, m := range items {
		out = append(out, ContactDTO{
			ID: m.ID, Name: m.Name, Email: m.Email, Phone: m.Phone, Company: m.Company,
			Message: m.Message, Status: m.Status, RespondedBy: m.RespondedBy, CreatedAt: m.CreatedAt,
		})
	}
	return out
}

type NewsDTO struct {
	ID          string     `json:"id"`
	TitleEn     string     `json:"titleEn"`
	TitleVi     string     `json:"titleVi"`
	CoverURL    *string    `json:"coverURL"`
	Location    *string    `json:"location"`
	BodyEn      *string    `json:"bodyEn"`
	BodyVi      *string    `json:"bodyVi"`
	EventDate   *time.Time `json:"eventDate"`
	IsPublished bool       `json:"isPublished"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toNewsDTO(n entity.NewsItem) NewsDTO {
	return NewsDTO{
		ID: n.ID, TitleEn: n.TitleEn, TitleVi: n.TitleVi, CoverURL: n.CoverURL, Location: n.Location,
		BodyEn: n.BodyEn, BodyVi: n.BodyVi, EventDate: n.EventDate, IsPublished: n.IsPublished,
		CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt,
	}
}

func toNewsDTOs(items []entity.NewsItem) []NewsDTO {
	out := make([]NewsDTO, 0, len(items))
	for _, n := range items {
		out = append(out, toNewsDTO(n))
	}
	return out
}

func summaryOf(u *entity.User) entity.UserSummary {
	return entity.UserSummary{User: *u}
}
