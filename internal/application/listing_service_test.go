package application

import (
	"context"
	"testing"
)

func TestCreateListingRequiresSeller(t *testing.T) {
	f := newFixture(t)
	buyer := f.register(t, "Buyer", "buyer@example.com", "1", false)

	_, err := f.listings.Create(context.Background(), buyer, CreateListingInput{Title: "Rice", Price: 1, MinOrderQty: 1})
	assertKind(t, err, KindForbidden)
	if AsError(err).Message != "Only sellers can create listings" {
		t.Errorf("unexpected message %q", AsError(err).Message)
	}
}

func TestCreateListingValidates(t *testing.T) {
	f := newFixture(t)
	seller := f.register(t, "Seller", "seller@example.com", "1", true)

	_, err := f.listings.Create(context.Background(), seller, CreateListingInput{Title: " ", Price: -1, MinOrderQty: 0, Stock: -1})
	assertKind(t, err, KindValidation)
	for _, field := range []string{"title", "price", "minOrderQty", "stock"} {
		if _, ok := AsError(err).Fields[field]; !ok {
			t.Errorf("expected %s error in %v", field, AsError(err).Fields)
		}
	}
}

func TestListingOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seller := f.register(t, "Seller", "seller@example.com", "1", true)
	other := f.register(t, "Other", "other@example.com", "2", true)
	admin := f.adminIdentity(t)
	l := f.listing(t, seller)

	title := "Jasmine rice"
	_, err := f.listings.Update(ctx, other, l.ID, UpdateListingInput{Title: &title})
	assertKind(t, err, KindForbidden)
	assertKind(t, f.listings.Delete(ctx, other, l.ID), KindForbidden)
	assertKind(t, f.listings.Delete(ctx, admin, l.ID), KindForbidden)

	stock := 9
	got, err := f.listings.Update(ctx, seller, l.ID, UpdateListingInput{Title: &title, Stock: &stock})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if got.Title != title || got.Stock != 9 || got.Price != 10 {
		t.Errorf("partial update not applied as expected: %+v", got)
	}

	bad := -5
	_, err = f.listings.Update(ctx, seller, l.ID, UpdateListingInput{Stock: &bad})
	assertKind(t, err, KindValidation)

	if err := f.listings.Delete(ctx, seller, l.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	assertKind(t, f.listings.Delete(ctx, seller, l.ID), KindNotFound)
	assertKind(t, f.listings.Delete(ctx, seller, "not-a-uuid"), KindNotFound)
}

func TestDeleteListingCascadesInquiries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seller := f.register(t, "Seller", "seller@example.com", "1", true)
	l := f.listing(t, seller)
	for i := 0; i < 3; i++ {
		if _, err := f.inq.Create(ctx, anonymous(), CreateInquiryInput{ListingID: l.ID, BuyerName: "B", BuyerPhone: "9", Quantity: 1}); err != nil {
			t.Fatalf("inquiry: %v", err)
		}
	}
	if err := f.listings.Delete(ctx, seller, l.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	left, _ := f.store.Inquiries().ListByListing(ctx, l.ID)
	if len(left) != 0 {
		t.Fatalf("expected inquiries removed, %d left", len(left))
	}
}

func TestGetListingIncludesSellerAndFiltersOrigin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.auth.Register(ctx, RegisterInput{Name: "Vy", Email: "vy@example.com", Phone: "1", Password: "password123", IsSeller: true, FromVietnam: true})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	vn := f.listing(t, identityOf(s))
	f.listing(t, f.register(t, "Ken", "ken@example.com", "2", true))

	d, err := f.listings.Get(ctx, vn.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if d.Seller.ID != s.User.ID {
		t.Errorf("expected seller %s, got %s", s.User.ID, d.Seller.ID)
	}

	items, err := f.listings.List(ctx, " Vietnam ")
	if err != nil || len(items) != 1 || items[0].ID != vn.ID {
		t.Fatalf("expected only the Vietnamese listing, got %v (%v)", items, err)
	}
	all, _ := f.listings.List(ctx, "")
	if len(all) != 2 {
		t.Errorf("expected 2 listings, got %d", len(all))
	}
	_, err = f.listings.Get(ctx, "00000000-0000-0000-0000-000000000009")
	assertKind(t, err, KindNotFound)
}
