package pine

// Close releases resources held by this Pine instance.
//
// Every write is already on disk when the call that made it returns, so
// Close only drops the representative cache. It is safe to call more than
// once.
func (p *Pine) Close() error {
	if p == nil {
		return nil
	}
	p.clusters.Purge()
	p.logger.Debug("store closed")
	return nil
}
