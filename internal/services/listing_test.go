package services

import (
	"context"
	"errors"
	"sale-route-service/internal/domain"
	"sale-route-service/internal/ports"
	"testing"
)

func TestCreateListingGeocodes(t *testing.T) {
	repo := &fakeRepo{}
	geo := &fakeGeocoder{table: map[string]domain.Coordinates{
		"123 Oak St, Verona": {Lat: 42.9908, Lon: -89.5332},
	}}

	s, err := CreateListing(context.Background(), ListingRequest{
		OwnerID: " sam ", City: "Verona", Type: "Garage Sale", Host: "Sam", Address: " 123 Oak St ",
	}, repo, geo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.ID == "" || s.OwnerID != "sam" || s.Address != "123 Oak St" {
		t.Fatalf("unexpected sale: %+v", s)
	}
	if s.Coordinates != (domain.Coordinates{Lat: 42.9908, Lon: -89.5332}) {
		t.Fatalf("coordinates = %v", s.Coordinates)
	}
	if s.CreatedAt.IsZero() {
		t.Fatalf("created_at not set")
	}
	if len(repo.sales) != 1 {
		t.Fatalf("sale not stored")
	}
}

func TestCreateListingFallsBackToZero(t *testing.T) {
	for name, geo := range map[string]ports.Geocoder{
		"no match":       &fakeGeocoder{},
		"unavailable":    nil,
		"provider error": &fakeGeocoder{err: errors.New("timeout")},
		"bad coordinates": &fakeGeocoder{table: map[string]domain.Coordinates{
			"1 Main St, Madison": {Lat: 100},
		}},
	} {
		t.Run(name, func(t *testing.T) {
			repo := &fakeRepo{}
			s, err := CreateListing(context.Background(), ListingRequest{City: "Madison", Host: "Pat", Address: "1 Main St"}, repo, geo)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Geocoded() {
				t.Fatalf("expected (0,0) fallback, got %v", s.Coordinates)
			}
			if len(repo.sales) != 1 {
				t.Fatalf("sale should still be stored")
			}
		})
	}
}

func TestCreateListingValidation(t *testing.T) {
	repo := &fakeRepo{}

	for _, req := range []ListingRequest{
		{City: "Madison", Host: "Pat"},
		{Address: "1 Main St", Host: "Pat"},
		{Address: "  ", City: "Madison", Host: "Pat"},
		{Address: "1 Main St", City: "Madison"},
		{Address: "1 Main St", City: "Madison", Host: " "},
	} {
		if _, err := CreateListing(context.Background(), req, repo, nil); !errors.Is(err, ErrInvalidListing) {
			t.Fatalf("request %+v: got %v, want ErrInvalidListing", req, err)
		}
	}
	if len(repo.sales) != 0 {
		t.Fatalf("invalid listings were stored")
	}

	boom := errors.New("disk full")
	if _, err := CreateListing(context.Background(), ListingRequest{City: "M", Host: "H", Address: "A"}, &fakeRepo{addErr: boom}, nil); !errors.Is(err, boom) {
		t.Fatalf("store error not wrapped: %v", err)
	}
}
