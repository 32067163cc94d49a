package domain

type ResourceKind string

// Scannable kinds. The scanner registries key their listers by these; the
// import-mapping tables cover exactly this set.
const (
	KindFunction       ResourceKind = "Function"
	KindContainer      ResourceKind = "Container"
	KindBucket         ResourceKind = "Bucket"
	KindNetwork        ResourceKind = "Network"
	KindConnector      ResourceKind = "Connector"
	KindRepository     ResourceKind = "Repository"
	KindGlobalAddress  ResourceKind = "GlobalAddress"
	KindURLMap         ResourceKind = "URLMap"
	KindBackendService ResourceKind = "BackendService"
	KindBackendBucket  ResourceKind = "BackendBucket"
	KindForwardingRule ResourceKind = "ForwardingRule"
	KindHTTPProxy      ResourceKind = "HTTPProxy"
	KindHTTPSProxy     ResourceKind = "HTTPSProxy"
	KindEndpointGroup  ResourceKind = "EndpointGroup"
	KindCertificate    ResourceKind = "Certificate"
)

// Kinds that only appear as declared resources in the project config. They
// are validated pre-deployment but never scanned by this engine.
const (
	KindDatabase ResourceKind = "Database"
	KindTopic    ResourceKind = "Topic"
	KindSecret   ResourceKind = "Secret"
)

func (rk ResourceKind) String() string {
	return string(rk)
}

// ScannableKinds returns the closed set of kinds the reconciliation engine
// tracks in cloud accounts, in stable order.
func ScannableKinds() []ResourceKind {
	return []ResourceKind{
		KindFunction,
		KindContainer,
		KindBucket,
		KindNetwork,
		KindConnector,
		KindRepository,
		KindGlobalAddress,
		KindURLMap,
		KindBackendService,
		KindBackendBucket,
		KindForwardingRule,
		KindHTTPProxy,
		KindHTTPSProxy,
		KindEndpointGroup,
		KindCertificate,
	}
}

// ParseKind maps the lowercase config spelling to a ResourceKind.
func ParseKind(s string) (ResourceKind, bool) {
	k, ok := kindNames[s]
	return k, ok
}

var kindNames = map[string]ResourceKind{
	"function":        KindFunction,
	"container":       KindContainer,
	"bucket":          KindBucket,
	"network":         KindNetwork,
	"connector":       KindConnector,
	"repository":      KindRepository,
	"global_address":  KindGlobalAddress,
	"url_map":         KindURLMap,
	"backend_service": KindBackendService,
	"backend_bucket":  KindBackendBucket,
	"forwarding_rule": KindForwardingRule,
	"http_proxy":      KindHTTPProxy,
	"https_proxy":     KindHTTPSProxy,
	"endpoint_group":  KindEndpointGroup,
	"certificate":     KindCertificate,
	"database":        KindDatabase,
	"topic":           KindTopic,
	"secret":          KindSecret,
}
