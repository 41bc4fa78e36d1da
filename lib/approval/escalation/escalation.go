package escalation

// Policy - пороги стоимости для продления цепочки согласования.
// Значения приходят из конфигурации, сравнение всегда строгое.
type Policy struct {
	AgmCostThreshold float64
	GmCostThreshold  float64
}

// RequiresAgm - этап AGM обязателен при превышении порога стоимости
// либо при добавлении процесса или персонала
func (p Policy) RequiresAgm(costEstimate float64, requiresProcessAddition, requiresManpowerAddition bool) bool {
	return costEstimate > p.AgmCostThreshold ||
		requiresProcessAddition ||
		requiresManpowerAddition
}

// RequiresGm - этап GM обязателен только при превышении верхнего порога стоимости
func (p Policy) RequiresGm(costEstimate float64) bool {
	return costEstimate > p.GmCostThreshold
}
