package handlers

// Handlers groups the resource handlers mounted by the router.
type Handlers struct {
	Auth    *AuthHandler
	Tasks   *TaskHandler
	Catalog *CatalogHandler
	Reports *ReportHandler
}
