package model

// ReadingService represents a bookable reading offering (tarot, astrology,
// coffee reading and so on) with bilingual presentation fields.
type ReadingService struct {
	ID            int     `db:"id" json:"id"`
	NameEn        string  `db:"name_en" json:"name_en"`
	NameAr        string  `db:"name_ar" json:"name_ar"`
	DescriptionEn string  `db:"description_en" json:"description_en"`
	DescriptionAr string  `db:"description_ar" json:"description_ar"`
	PriceUSD      float64 `db:"price_usd" json:"price_usd"`
	DurationMin   int     `db:"duration_min" json:"duration_min"`
	IsActive      bool    `db:"is_active" json:"is_active"`
}
