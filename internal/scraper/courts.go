package scraper

import "time"

// Court is the configuration of one supported court.
type Court struct {
	Key      string
	Name     string
	Parties  []string
	Statuses []string
	MinYear  int
	MaxYear  int
	Orders   []Order
}

const (
	FaridabadKey = "faridabad"
	DelhiKey     = "delhi"
)

var (
	Faridabad = Court{
		Key:  FaridabadKey,
		Name: "Faridabad District Court",
		Parties: []string{
			"Ravi Sharma vs State of Haryana",
			"Anita Gupta vs Rajesh Mehra",
			"XYZ Ltd vs ABC Corp",
			"Sunita Devi vs Haryana Police",
			"Kunal Batra vs Municipal Corporation",
		},
		Statuses: []string{"Pending", "Disposed", "Listed", "Under Review", "Adjourned"},
		MinYear:  2019,
		MaxYear:  2024,
		Orders: []Order{
			{
				Date:        time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
				Description: "Latest Order Issued",
				PDFURL:      "https://ecourts.gov.in/sample_order_101.pdf",
			},
		},
	}

	Delhi = Court{
		Key:  DelhiKey,
		Name: "Delhi High Court",
		Parties: []string{
			"ABC Corp vs Union of India",
			"Meena Sharma vs Delhi Development Authority",
			"XYZ Pvt Ltd vs Delhi Jal Board",
			"Sunil Kumar vs Delhi Police",
			"Rekha Gupta vs State of NCT of Delhi",
		},
		Statuses: []string{"Listed", "Pending", "Reserved", "Dismissed", "In Progress"},
		MinYear:  2020,
		MaxYear:  2024,
		Orders: []Order{
			{
				Date:        time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC),
				Description: "Show Cause Notice Issued",
				PDFURL:      "https://delhihighcourt.nic.in/sample_order_delhi.pdf",
			},
		},
	}
)

// Courts returns the supported courts in display order.
func Courts() []Court {
	return []Court{Faridabad, Delhi}
}
