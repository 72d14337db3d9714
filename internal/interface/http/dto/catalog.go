package dto

// PageQuery is the shared page/limit query. Zero values fall back to the
// defaults of the use case.
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
}

// CreateProductForm is the multipart body of POST /products. Images come
// from the images[] file field.
type CreateProductForm struct {
	Title         string `form:"title" binding:"required,max=255" example:"Phone"`
	TitleAm       string `form:"titleAm" binding:"max=255"`
	TitleRu       string `form:"titleRu" binding:"max=255"`
	Description   string `form:"description"`
	DescriptionAm string `form:"descriptionAm"`
	DescriptionRu string `form:"descriptionRu"`
	Price         string `form:"price" binding:"required,numeric" example:"100"`
	Stock         int    `form:"stock" binding:"min=0" example:"5"`
	CategoryID    string `form:"categoryId" binding:"required,uuid"`
	SubcategoryID string `form:"subcategoryId" binding:"omitempty,uuid"`
	IsFeatured    bool   `form:"isFeatured"`
	IsBestSeller  bool   `form:"isBestSeller"`
	IsBestSelect  bool   `form:"isBestSelect"`
	Disabled      bool   `form:"disabled"`
	Priority      int    `form:"priority"`
}

// UpdateProductForm leaves absent fields unchanged. An empty subcategoryId
// clears the subcategory.
type UpdateProductForm struct {
	Title          *string  `form:"title" binding:"omitempty,max=255"`
	TitleAm        *string  `form:"titleAm" binding:"omitempty,max=255"`
	TitleRu        *string  `form:"titleRu" binding:"omitempty,max=255"`
	Description    *string  `form:"description"`
	DescriptionAm  *string  `form:"descriptionAm"`
	DescriptionRu  *string  `form:"descriptionRu"`
	Price          *string  `form:"price" binding:"omitempty,numeric"`
	Stock          *int     `form:"stock" binding:"omitempty,min=0"`
	CategoryID     *string  `form:"categoryId" binding:"omitempty,uuid"`
	SubcategoryID  *string  `form:"subcategoryId" binding:"omitempty,uuid"`
	IsFeatured     *bool    `form:"isFeatured"`
	IsBestSeller   *bool    `form:"isBestSeller"`
	IsBestSelect   *bool    `form:"isBestSelect"`
	Disabled       *bool    `form:"disabled"`
	Priority       *int     `form:"priority"`
	ImagesToRemove []string `form:"imagesToRemove"`
}

// ProductsByCategoryQuery filters GET /categories/:id/products.
type ProductsByCategoryQuery struct {
	PageQuery
	SubcategoryID string `form:"subcategoryId" binding:"omitempty,uuid"`
	Search        string `form:"search"`
	MinPrice      string `form:"minPrice" binding:"omitempty,numeric" example:"50"`
	MaxPrice      string `form:"maxPrice" binding:"omitempty,numeric"`
	SortBy        string `form:"sortBy" binding:"omitempty,oneof=default newest oldest price_high_to_low price_low_to_high" example:"price_low_to_high"`
}

type CreateCategoryForm struct {
	Title   string `form:"title" binding:"required,max=255" example:"Electronics"`
	TitleAm string `form:"titleAm" binding:"max=255"`
	TitleRu string `form:"titleRu" binding:"max=255"`
	Slug    string `form:"slug" binding:"max=255"`
}

type UpdateCategoryForm struct {
	Title   *string `form:"title" binding:"omitempty,max=255"`
	TitleAm *string `form:"titleAm" binding:"omitempty,max=255"`
	TitleRu *string `form:"titleRu" binding:"omitempty,max=255"`
	Slug    *string `form:"slug" binding:"omitempty,max=255"`
}

type CreateSubcategoryRequest struct {
	Title      string `json:"title" binding:"required,max=255" example:"Smartphones"`
	TitleAm    string `json:"titleAm" binding:"max=255"`
	TitleRu    string `json:"titleRu" binding:"max=255"`
	CategoryID string `json:"categoryId" binding:"required,uuid"`
	Image      string `json:"image"`
}

type UpdateSubcategoryRequest struct {
	Title      *string `json:"title" binding:"omitempty,max=255"`
	TitleAm    *string `json:"titleAm" binding:"omitempty,max=255"`
	TitleRu    *string `json:"titleRu" binding:"omitempty,max=255"`
	CategoryID *string `json:"categoryId" binding:"omitempty,uuid"`
	Image      *string `json:"image"`
}

// CreateBannerForm is the multipart body of POST /banners; the image file
// field is required.
type CreateBannerForm struct {
	URL      string `form:"url" binding:"required" example:"/categories/electronics"`
	Text     string `form:"text" binding:"max=200"`
	TextAm   string `form:"textAm" binding:"max=200"`
	TextRu   string `form:"textRu" binding:"max=200"`
	IsActive *bool  `form:"isActive"`
	Priority *int   `form:"priority" binding:"omitempty,min=1"`
}

type UpdateBannerForm struct {
	URL      *string `form:"url"`
	Text     *string `form:"text" binding:"omitempty,max=200"`
	TextAm   *string `form:"textAm" binding:"omitempty,max=200"`
	TextRu   *string `form:"textRu" binding:"omitempty,max=200"`
	IsActive *bool   `form:"isActive"`
	Priority *int    `form:"priority" binding:"omitempty,min=1"`
}

type BannerListQuery struct {
	Active bool `form:"active"`
}
