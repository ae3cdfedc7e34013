package scraper

// Hooks for the external test package.
var (
	RemotiveRestrictionForTest = remotiveRestriction
	WWRJobIDForTest            = wwrJobID
	SplitWWRTitleForTest       = splitWWRTitle
)
