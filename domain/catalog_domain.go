package domain

var (
	MessageSuccessGetCategories  = "success get categories"
	MessageSuccessGetUnits       = "success get units"
	MessageSuccessGetIngredients = "success get ingredients"

	MessageFailedGetCategories  = "failed to get categories"
	MessageFailedGetUnits       = "failed to get units"
	MessageFailedGetIngredients = "failed to get ingredients"
)

type (
	CategoryResponse struct {
		ID               uint   `json:"id"`
		Name             string `json:"name"`
		ParentCategoryID *uint  `json:"parent_category_id"`
	}

	UnitResponse struct {
		ID         uint   `json:"id"`
		Name       string `json:"name"`
		UnitTypeID uint   `json:"unit_type_id"`
	}

	IngredientResponse struct {
		ID         uint   `json:"id"`
		Name       string `json:"name"`
		UnitTypeID uint   `json:"unit_type_id"`
		IsApproved bool   `json:"is_approved"`
	}
)
