package ports

// ViewInvalidator discards cached renderings of a view path. Invalidation is
// fire-and-forget: it has no failure the caller could act on.
type ViewInvalidator interface {
	Invalidate(path string)
}
