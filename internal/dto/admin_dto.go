package dto

type StatisticsResponse struct {
	Success           bool    `json:"success"`
	TotalCustomers    int64   `json:"totalCustomers"`
	TotalProviders    int64   `json:"totalProviders"`
	VerifiedProviders int64   `json:"verifiedProfessionals"`
	TotalServices     int64   `json:"totalServices"`
	TotalBookings     int64   `json:"totalBookings"`
	CompletedBookings int64   `json:"tasksCompleted"`
	AverageRating     float64 `json:"customerSatisfaction"`
}

// DemoDataResponse keeps the snake_case keys the admin tooling reads.
type DemoDataResponse struct {
	Success           bool     `json:"success"`
	Message           string   `json:"message"`
	ServicesCreated   int      `json:"services_created"`
	ProvidersCreated  int      `json:"providers_created"`
	CategoriesCreated int      `json:"categories_created"`
	Log               []string `json:"log"`
	TotalServicesInDB int64    `json:"total_services_in_db"`
}

type ServicesCountResponse struct {
	TotalServices int               `json:"total_services"`
	Services      []ServiceResponse `json:"services"`
}
