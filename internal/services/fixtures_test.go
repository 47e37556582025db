package services

import (
	"github.com/google/uuid"

	"github.com/justinbrick/capstone-project-shipping-api/internal/adapters/geocode"
	"github.com/justinbrick/capstone-project-shipping-api/internal/adapters/repositories"
	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
)

// Four warehouses spread across the country plus one recipient in eastern
// North Carolina. Distances from the recipient: Marion ~109 mi, Fort Worth
// ~1216 mi, New Salem ~1288 mi, Wells ~2087 mi.
const (
	marionAddr    = "279 Kadire Dr, Marion, NC 28752"
	fortWorthAddr = "131 E Exchange Ave, Fort Worth, TX 76164"
	wellsAddr     = "1540 Navco Ln, Wells, NV 89835"
	newSalemAddr  = "409 N 10th St, New Salem, ND 58563"
	warsawAddr    = "2683 NC-24, Warsaw, NC 28398"
)

var (
	marionID    = uuid.New()
	fortWorthID = uuid.New()
	wellsID     = uuid.New()
	newSalemID  = uuid.New()
)

func fixtureWarehouses() []domain.Warehouse {
	return []domain.Warehouse{
		{WarehouseID: marionID, Address: marionAddr, Latitude: 35.705054, Longitude: -79.809727},
		{WarehouseID: fortWorthID, Address: fortWorthAddr, Latitude: 31.193425, Longitude: -98.624873},
		{WarehouseID: wellsID, Address: wellsAddr, Latitude: 41.130868, Longitude: -115.962108},
		{WarehouseID: newSalemID, Address: newSalemAddr, Latitude: 45.379562, Longitude: -98.490035},
	}
}

func fixtureGeocoder() *geocode.Static {
	return geocode.NewStatic(map[string]domain.Coordinates{
		marionAddr:    {Lat: 35.705054, Lon: -79.809727},
		fortWorthAddr: {Lat: 31.193425, Lon: -98.624873},
		wellsAddr:     {Lat: 41.130868, Lon: -115.962108},
		newSalemAddr:  {Lat: 45.379562, Lon: -98.490035},
		warsawAddr:    {Lat: 35.000, Lon: -78.080},
	})
}

// fixtureStore builds a warehouse store holding stock units of UPCs 1-14 at
// every fixture warehouse.
func fixtureStore(stock int) *repositories.MemoryWarehouseStore {
	store := repositories.NewMemoryWarehouseStore()
	for _, w := range fixtureWarehouses() {
		items := make([]domain.Item, 0, 14)
		for upc := 1; upc <= 14; upc++ {
			items = append(items, domain.Item{UPC: upc, Stock: stock})
		}
		store.AddWarehouse(w, items)
	}
	return store
}
