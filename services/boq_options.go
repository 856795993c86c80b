package services

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks option values received over HTTP before a generation run.
func (o BOQGenerationOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.LaborRate, validation.Min(0.0)),
		validation.Field(&o.EquipmentRate, validation.Min(0.0)),
		validation.Field(&o.OverheadPercentage, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&o.ProfitMargin, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&o.Currency, validation.Required, validation.Length(3, 3)),
	)
}
