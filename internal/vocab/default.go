package vocab

// Default builds the built-in SaaS product vocabulary. Operators can
// replace it with a YAML vocabulary file (see LoadFile), but the shipped
// set covers the attributes the analysis pipeline actually produces today.
func Default() *Registry {
	r := NewRegistry()
	registerStartupFields(r)
	registerSelectionFields(r)
	registerMotherThemeFields(r)
	registerLandingPageFields(r)
	return r
}

// registerStartupFields covers raw product attributes scraped or reported
// for the startup itself.
func registerStartupFields(r *Registry) {
	r.mustRegister(GroupStartup, FieldSpec{Name: "revenue_30d", Kind: KindNumber, Description: "trailing 30-day revenue in USD"})
	r.mustRegister(GroupStartup, FieldSpec{Name: "revenue_total", Kind: KindNumber, Description: "lifetime revenue in USD"})
	r.mustRegister(GroupStartup, FieldSpec{Name: "follower_count", Kind: KindNumber, Description: "founder social followers"})
	r.mustRegister(GroupStartup, FieldSpec{Name: "team_size", Kind: KindNumber})
	r.mustRegister(GroupStartup, FieldSpec{Name: "launched_days", Kind: KindNumber, Description: "days since public launch"})
	r.mustRegister(GroupStartup, FieldSpec{Name: "pricing_model", Kind: KindEnum, Allowed: []string{"free", "freemium", "subscription", "one_time", "usage_based"}})
	r.mustRegister(GroupStartup, FieldSpec{Name: "is_bootstrapped", Kind: KindBoolean})
	r.mustRegister(GroupStartup, FieldSpec{Name: "category", Kind: KindText})
	r.mustRegister(GroupStartup, FieldSpec{Name: "tags", Kind: KindText, Description: "free-form tag list"})
}

// registerSelectionFields covers derived classification attributes produced
// by the selection pass over a startup.
func registerSelectionFields(r *Registry) {
	r.mustRegister(GroupSelection, FieldSpec{Name: "market_scope", Kind: KindEnum, Allowed: []string{"horizontal", "vertical"}})
	r.mustRegister(GroupSelection, FieldSpec{Name: "feature_complexity", Kind: KindEnum, Allowed: []string{"simple", "moderate", "complex"}})
	r.mustRegister(GroupSelection, FieldSpec{Name: "entry_barrier", Kind: KindEnum, Allowed: []string{"low", "medium", "high"}})
	r.mustRegister(GroupSelection, FieldSpec{Name: "revenue_durability", Kind: KindEnum, Allowed: []string{"fragile", "stable", "compounding"}})
	r.mustRegister(GroupSelection, FieldSpec{Name: "solo_buildable", Kind: KindBoolean})
	r.mustRegister(GroupSelection, FieldSpec{Name: "growth_channel", Kind: KindEnum, Allowed: []string{"seo", "social", "community", "paid", "marketplace", "word_of_mouth"}})
}

// registerMotherThemeFields covers one field per judgment theme key. The
// evaluator sees a record's ProductJudgments flattened into this group, one
// value per theme.
func registerMotherThemeFields(r *Registry) {
	r.mustRegister(GroupMotherTheme, FieldSpec{Name: "entry_barrier", Kind: KindEnum, Allowed: []string{"low", "medium", "high"}})
	r.mustRegister(GroupMotherTheme, FieldSpec{Name: "compliance_load", Kind: KindEnum, Allowed: []string{"none", "light", "heavy"}})
	r.mustRegister(GroupMotherTheme, FieldSpec{Name: "demand_proof", Kind: KindEnum, Allowed: []string{"unproven", "emerging", "proven"}})
	r.mustRegister(GroupMotherTheme, FieldSpec{Name: "replication_difficulty", Kind: KindEnum, Allowed: []string{"trivial", "moderate", "hard"}})
	r.mustRegister(GroupMotherTheme, FieldSpec{Name: "action_speed", Kind: KindEnum, Allowed: []string{"weekend", "month", "quarter"}})
	r.mustRegister(GroupMotherTheme, FieldSpec{Name: "audience_leverage", Kind: KindEnum, Allowed: []string{"none", "helpful", "required"}})
	r.mustRegister(GroupMotherTheme, FieldSpec{Name: "attribution_driver", Kind: KindEnum, Allowed: []string{"product", "distribution", "timing", "founder"}})
}

// registerLandingPageFields covers metrics extracted from landing-page
// snapshots by the scraper pipeline.
func registerLandingPageFields(r *Registry) {
	r.mustRegister(GroupLandingPage, FieldSpec{Name: "headline_clarity", Kind: KindEnum, Allowed: []string{"vague", "clear", "sharp"}})
	r.mustRegister(GroupLandingPage, FieldSpec{Name: "social_proof_count", Kind: KindNumber})
	r.mustRegister(GroupLandingPage, FieldSpec{Name: "has_pricing_page", Kind: KindBoolean})
	r.mustRegister(GroupLandingPage, FieldSpec{Name: "cta_style", Kind: KindEnum, Allowed: []string{"trial", "demo", "waitlist", "buy"}})
	r.mustRegister(GroupLandingPage, FieldSpec{Name: "page_keywords", Kind: KindText})
}
