package application

import (
	"context"
	"testing"
)

func TestAdminGateOnEveryOperation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "User", "user@example.com", "1", true)

	_, err := f.admin.Stats(ctx, user)
	assertKind(t, err, KindForbidden)
	_, err = f.admin.ListUsers(ctx, user, UserQuery{})
	assertKind(t, err, KindForbidden)
	assertKind(t, f.admin.DeleteUser(ctx, user, user.UserID()), KindForbidden)
	assertKind(t, f.admin.DeleteUserListings(ctx, user, user.UserID()), KindForbidden)
	assertKind(t, f.admin.SetAdmin(ctx, user, user.UserID(), true), KindForbidden)
	_, err = f.admin.CreateAdmin(ctx, anonymous(), CreateAdminInput{})
	assertKind(t, err, KindForbidden)
}

func TestAdminStatsAndUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.adminIdentity(t)
	seller := f.register(t, "Sam Seller", "sam@example.com", "1", true)
	f.register(t, "Bea Buyer", "bea@example.com", "2", false)
	f.listing(t, seller)
	f.listing(t, seller)

	st, err := f.admin.Stats(ctx, admin)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Users != 3 || st.Sellers != 1 || st.Listings != 2 {
		t.Errorf("unexpected stats %+v", st)
	}

	sellers, err := f.admin.ListUsers(ctx, admin, UserQuery{Role: "SELLER"})
	if err != nil || len(sellers) != 1 || sellers[0].ListingsCount != 2 {
		t.Fatalf("expected one seller with 2 listings, got %+v (%v)", sellers, err)
	}
	buyers, _ := f.admin.ListUsers(ctx, admin, UserQuery{Role: "buyer"})
	if len(buyers) != 2 {
		t.Errorf("expected 2 buyers (admin included), got %d", len(buyers))
	}
	hit, _ := f.admin.ListUsers(ctx, admin, UserQuery{Search: "Bea"})
	if len(hit) != 1 || hit[0].User.Email != "bea@example.com" {
		t.Errorf("search by name failed: %+v", hit)
	}
	miss, _ := f.admin.ListUsers(ctx, admin, UserQuery{Search: "bea buyer"})
	if len(miss) != 0 {
		t.Errorf("search should be case-sensitive, got %d", len(miss))
	}
	paged, _ := f.admin.ListUsers(ctx, admin, UserQuery{Page: 2, Limit: 2})
	if len(paged) != 1 {
		t.Errorf("expected 1 user on page 2, got %d", len(paged))
	}
}

func TestAdminUserMutations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.adminIdentity(t)
	seller := f.register(t, "Seller", "seller@example.com", "1", true)
	l := f.listing(t, seller)
	if _, err := f.inq.Create(ctx, anonymous(), CreateInquiryInput{ListingID: l.ID, BuyerName: "B", BuyerPhone: "9", Quantity: 1}); err != nil {
		t.Fatalf("inquiry: %v", err)
	}

	if err := f.admin.DeleteUserListings(ctx, admin, seller.UserID()); err != nil {
		t.Fatalf("delete listings: %v", err)
	}
	if n, _ := f.store.Listings().Count(ctx); n != 0 {
		t.Errorf("expected no listings, got %d", n)
	}
	if left, _ := f.store.Inquiries().List(ctx); len(left) != 0 {
		t.Errorf("expected inquiries removed with listings, got %d", len(left))
	}

	if err := f.admin.SetAdmin(ctx, admin, seller.UserID(), true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	u, _ := f.store.Users().GetByID(ctx, seller.UserID())
	if !u.IsAdmin {
		t.Error("expected admin flag set")
	}
	assertKind(t, f.admin.SetAdmin(ctx, admin, "00000000-0000-0000-0000-000000000042", true), KindNotFound)

	if err := f.admin.DeleteUser(ctx, admin, seller.UserID()); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	assertKind(t, f.admin.DeleteUser(ctx, admin, seller.UserID()), KindNotFound)
	assertKind(t, f.admin.DeleteUser(ctx, admin, "bad-id"), KindNotFound)
}

func TestCreateAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.adminIdentity(t)

	u, err := f.admin.CreateAdmin(ctx, admin, CreateAdminInput{Name: "Ops", Email: " OPS@example.com", Phone: "5", Password: "password123"})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if !u.IsAdmin || u.IsSeller || u.Email != "ops@example.com" {
		t.Errorf("unexpected admin %+v", u)
	}
	_, err = f.admin.CreateAdmin(ctx, admin, CreateAdminInput{Name: "Ops", Email: "ops@example.com", Phone: "6", Password: "password123"})
	assertKind(t, err, KindConflict)

	again, created, err := f.admin.EnsureAdmin(ctx, CreateAdminInput{Email: "admin@example.com"})
	if err != nil || created || again.ID != admin.UserID() {
		t.Errorf("EnsureAdmin should be idempotent: %v %v", created, err)
	}
}
