package util

import (
	"os"
	"testing"

	"arena-pro/config"
	"arena-pro/pricing"
	"arena-pro/squad"
)

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	tempFile, err := os.CreateTemp("", "test*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	_, err = tempFile.Write([]byte(content))
	if err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tempFile.Close()
	return tempFile.Name()
}

func TestReadVenueFromJSON(t *testing.T) {
	// Arrange
	content := `{
		"id": "1",
		"name": "Test Venue",
		"lat": 40.7128,
		"lng": -74.0060,
		"pricePerHour": "1200"
	}`
	tempFile := createTempFile(t, content)
	defer os.Remove(tempFile)

	// Act
	response, err := ReadVenueFromJSON(tempFile)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if response.VenueID != "1" {
		t.Errorf("Expected VenueID '1', got %s", response.VenueID)
	}
	if response.VenueName != "Test Venue" {
		t.Errorf("Expected VenueName 'Test Venue', got %s", response.VenueName)
	}
	if response.VenueLat != 40.7128 {
		t.Errorf("Expected VenueLat 40.7128, got %f", response.VenueLat)
	}
	if response.VenueLon != -74.0060 {
		t.Errorf("Expected VenueLon -74.0060, got %f", response.VenueLon)
	}
	if got := pricing.GetOriginalPrice(response); got != 1200 {
		t.Errorf("Expected original price 1200, got %v", got)
	}
}

func TestReadVenueFromJSON_Errors(t *testing.T) {
	if _, err := ReadVenueFromJSON("does-not-exist.json"); err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}

	tempFile := createTempFile(t, `{"id": `)
	defer os.Remove(tempFile)
	if _, err := ReadVenueFromJSON(tempFile); err == nil {
		t.Fatal("Expected error for malformed JSON, got nil")
	}
}

func TestReadVenuesFromJSON_Resource(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "..")

	venues, err := ReadVenuesFromJSON(config.GetResourcePath(config.VENUES_RESOURCE))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(venues) != 3 {
		t.Fatalf("Expected 3 venues, got %d", len(venues))
	}

	// numeric string base price, empty-string discount
	if got := pricing.Quote(&venues[1]); got.OriginalPrice != 1500 || got.HasDiscount {
		t.Errorf("Unexpected quote for %s: %+v", venues[1].VenueID, got)
	}
	// null fields fall through, discount capped at 100
	if got := pricing.Quote(&venues[2]); got.OriginalPrice != 800 || got.DiscountedPrice != 0 {
		t.Errorf("Unexpected quote for %s: %+v", venues[2].VenueID, got)
	}
}

func TestReadVenueFromJSON_StaticResource(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "..")

	v, err := ReadVenueFromJSON(config.GetResourcePath(config.VENUE_STATIC_RESOURCE))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := pricing.Quote(v); got.DiscountedPrice != 1700 {
		t.Errorf("Expected discounted price 1700, got %v", got.DiscountedPrice)
	}
	if len(v.DateSpecificSlots["2030-05-10"]) != 2 {
		t.Errorf("Expected 2 slots on 2030-05-10, got %d", len(v.DateSpecificSlots["2030-05-10"]))
	}
}

func TestReadBookingFromJSON_StaticResource(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "..")

	b, err := ReadBookingFromJSON(config.GetResourcePath(config.BOOKING_STATIC_RESOURCE))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	status, err := squad.ComputeSquadStatus(b)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if status.TotalPlayers != 6 || status.PricePerPlayer != 500 || status.SpotsLeft != 3 {
		t.Errorf("Unexpected squad status: %+v", status)
	}
}
