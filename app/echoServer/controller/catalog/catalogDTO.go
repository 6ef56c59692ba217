package catalog

type CategoryReq struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type AmenityReq struct {
	Name string `json:"name" validate:"required,max=100"`
	Icon string `json:"icon"`
}
