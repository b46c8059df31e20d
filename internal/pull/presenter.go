package pull

// BasePresenter is a HeaderPresenter that only tracks visibility. Embed it
// and override the hooks a header cares about.
type BasePresenter struct {
	visible bool
}

func (p *BasePresenter) OnCreated(Host, Header) {}
func (p *BasePresenter) OnReset() {}
func (p *BasePresenter) OnPulled(float64) {}
func (p *BasePresenter) OnRefreshStarted() {}
func (p *BasePresenter) OnReleaseToRefresh() {}
func (p *BasePresenter) OnRefreshMinimized() {}
func (p *BasePresenter) OnEnvironmentChanged(Host, any) {}

// ShowHeaderView marks the header visible.
func (p *BasePresenter) ShowHeaderView() bool {
	if p.visible {
		return false
	}
	p.visible = true
	return true
}

// HideHeaderView marks the header hidden.
func (p *BasePresenter) HideHeaderView() bool {
	if !p.visible {
		return false
	}
	p.visible = false
	return true
}

// Visible reports whether the header is shown.
func (p *BasePresenter) Visible() bool {
	return p.visible
}
