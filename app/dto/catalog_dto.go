package dto

// ServiceSizeDTO is a priced size variant within a category.
type ServiceSizeDTO struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Duration int    `json:"duration"`
}

// StyleCategoryDTO is a bookable service grouping with its size variants.
type StyleCategoryDTO struct {
	UUID        string           `json:"uuid"`
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Tag         string           `json:"tag,omitempty"`
	Sizes       []ServiceSizeDTO `json:"sizes"`
}

// AddonDTO is an optional extra offered alongside a service.
type AddonDTO struct {
	UUID             string   `json:"uuid"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Price            int      `json:"price"`
	Duration         int      `json:"duration"`
	LinkedCategories []string `json:"linked_categories,omitempty"`
	LinkedSizes      []string `json:"linked_sizes,omitempty"`
}

// CatalogResponse is the full booking catalog served to the wizard.
type CatalogResponse struct {
	Categories []StyleCategoryDTO `json:"categories"`
	Addons     []AddonDTO         `json:"addons"`
}

// CreateCategoryRequest creates a style category with initial sizes.
type CreateCategoryRequest struct {
	Slug        string              `json:"slug" validate:"required,min=1,max=100"`
	Name        string              `json:"name" validate:"required,min=1,max=255"`
	Description string              `json:"description" validate:"max=2000"`
	Tag         string              `json:"tag" validate:"max=50"`
	SortOrder   int                 `json:"sort_order"`
	Sizes       []CreateSizeRequest `json:"sizes" validate:"omitempty,dive"`
}

// CreateSizeRequest creates a size variant under a category.
type CreateSizeRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=255"`
	Price     int    `json:"price" validate:"required,min=0"`
	Duration  int    `json:"duration" validate:"required,min=0"`
	SortOrder int    `json:"sort_order"`
}

// UpdateCategoryRequest applies a partial update to a category.
// Nil fields are left unchanged; IsActive false deactivates the category.
type UpdateCategoryRequest struct {
	Slug        *string `json:"slug" validate:"omitempty,min=1,max=100"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Tag         *string `json:"tag" validate:"omitempty,max=50"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateSizeRequest applies a partial update to a size variant.
type UpdateSizeRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	Price     *int    `json:"price" validate:"omitempty,min=0"`
	Duration  *int    `json:"duration" validate:"omitempty,min=0"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// CreateAddonRequest creates a booking addon.
type CreateAddonRequest struct {
	Name             string   `json:"name" validate:"required,min=1,max=255"`
	Description      string   `json:"description" validate:"max=2000"`
	Price            int      `json:"price" validate:"min=0"`
	Duration         int      `json:"duration" validate:"min=0"`
	LinkedCategories []string `json:"linked_categories" validate:"omitempty,dive,min=1"`
	LinkedSizes      []string `json:"linked_sizes" validate:"omitempty,dive,uuid"`
	SortOrder        int      `json:"sort_order"`
}

// UpdateAddonRequest applies a partial update to an addon.
// Link lists replace the stored lists when present.
type UpdateAddonRequest struct {
	Name             *string   `json:"name" validate:"omitempty,min=1,max=255"`
	Description      *string   `json:"description" validate:"omitempty,max=2000"`
	Price            *int      `json:"price" validate:"omitempty,min=0"`
	Duration         *int      `json:"duration" validate:"omitempty,min=0"`
	LinkedCategories *[]string `json:"linked_categories" validate:"omitempty,dive,min=1"`
	LinkedSizes      *[]string `json:"linked_sizes" validate:"omitempty,dive,uuid"`
	SortOrder        *int      `json:"sort_order"`
	IsActive         *bool     `json:"is_active"`
}
