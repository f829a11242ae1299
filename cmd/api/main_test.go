package main

import (
	"testing"

	"github.com/canchapp/canchapp-backend/internal/dashboard"
	"github.com/canchapp/canchapp-backend/internal/reservations"
)

func TestDashboardBookingsWiresBookingQueries(t *testing.T) {
	adapter := dashboardBookings{
		Repository: &dashboard.Repository{},
		recent:     &reservations.Repository{},
	}

	params := dashboard.ServiceParams{Bookings: adapter}
	if params.Bookings == nil {
		t.Fatal("adapter must satisfy the dashboard booking queries")
	}
}
