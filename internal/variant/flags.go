package variant

// PropertyHint tells the host editor how to present a property.
type PropertyHint int

const (
	HintNone PropertyHint = iota
	HintRange
	HintEnum
	HintEnumSuggestion
	HintExpEasing
	HintLink
	HintFlags
	HintLayers2DRender
	HintLayers2DPhysics
	HintLayers2DNavigation
	HintLayers3DRender
	HintLayers3DPhysics
	HintLayers3DNavigation
	HintFile
	HintDir
	HintGlobalFile
	HintGlobalDir
	HintResourceType
	HintMultilineText
	HintExpression
	HintPlaceholderText
	HintColorNoAlpha
)

// PropertyUsage is a bit set controlling storage and editor visibility.
type PropertyUsage int

const (
	UsageNone      PropertyUsage = 0
	UsageStorage   PropertyUsage = 1 << 1
	UsageEditor    PropertyUsage = 1 << 2
	UsageInternal  PropertyUsage = 1 << 3
	UsageCheckable PropertyUsage = 1 << 4
	UsageChecked   PropertyUsage = 1 << 5
	UsageGroup     PropertyUsage = 1 << 6
	UsageCategory  PropertyUsage = 1 << 7
	UsageSubgroup  PropertyUsage = 1 << 8

	UsageDefault = UsageStorage | UsageEditor
)

// Has reports whether every bit of flag is set.
func (u PropertyUsage) Has(flag PropertyUsage) bool {
	return u&flag == flag
}

// MethodFlags describes a bound method.
type MethodFlags int

const (
	MethodNormal  MethodFlags = 1 << 0
	MethodEditor  MethodFlags = 1 << 1
	MethodConst   MethodFlags = 1 << 2
	MethodVirtual MethodFlags = 1 << 3
	MethodVararg  MethodFlags = 1 << 4
	MethodStatic  MethodFlags = 1 << 5

	MethodDefault = MethodNormal
)
