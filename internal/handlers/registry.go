package handlers

// AppHandlers bundles every handler the route registry needs.
type AppHandlers struct {
	ReportHandler  *ReportHandler
	ContactHandler *ContactHandler
	PagesHandler   *PagesHandler
}
