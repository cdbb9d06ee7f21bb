package collectors

// TableEntry pairs a resource kind with the generic extraction spec used
// when no specialized collector claims the kind.
type TableEntry struct {
	Kind string
	Spec GenericSpec
}

// DefaultKindTable is the static kind table for the generic fallback.
// Order here is scan order for these kinds.
func DefaultKindTable() []TableEntry {
	return []TableEntry{
		{Kind: "PublicIPAddresses", Spec: GenericSpec{
			ProviderType: "microsoft.network/publicipaddresses",
			Strategy:     StrategyPrimaryIP,
			Label:        "Public IP",
		}},
		{Kind: "LoadBalancers", Spec: GenericSpec{
			ProviderType: "microsoft.network/loadbalancers",
			Strategy:     StrategyNone,
			Label:        "Load Balancer Frontend",
		}},
		{Kind: "ApplicationGateways", Spec: GenericSpec{
			ProviderType: "microsoft.network/applicationgateways",
			Strategy:     StrategyNone,
			Label:        "Application Gateway Frontend",
		}},
		{Kind: "BastionHosts", Spec: GenericSpec{
			ProviderType: "microsoft.network/bastionhosts",
			Strategy:     StrategyHostnameProperty,
			Property:     "dnsName",
			Label:        "Bastion DNS",
		}},
		{Kind: "FrontDoors", Spec: GenericSpec{
			ProviderType: "microsoft.network/frontdoors",
			Strategy:     StrategyFQDNFromName,
			FQDNSuffix:   ".azurefd.net",
			Label:        "Front Door Endpoint",
		}},
		{Kind: "TrafficManagerProfiles", Spec: GenericSpec{
			ProviderType: "microsoft.network/trafficmanagerprofiles",
			Strategy:     StrategyHostnameProperty,
			Property:     "dnsConfig.fqdn",
			Label:        "Traffic Manager FQDN",
		}},
		{Kind: "ContainerRegistries", Spec: GenericSpec{
			ProviderType: "microsoft.containerregistry/registries",
			Strategy:     StrategyHostnameProperty,
			Property:     "loginServer",
			Label:        "Registry Endpoint",
		}},
		{Kind: "ContainerInstances", Spec: GenericSpec{
			ProviderType: "microsoft.containerinstance/containergroups",
			Strategy:     StrategyHostnameProperty,
			Property:     "ipAddress.ip",
			Label:        "Container Group IP",
		}},
		{Kind: "RedisCaches", Spec: GenericSpec{
			ProviderType: "microsoft.cache/redis",
			Strategy:     StrategyHostnameProperty,
			Property:     "hostName",
			Label:        "Redis Endpoint",
		}},
		{Kind: "CosmosDBAccounts", Spec: GenericSpec{
			ProviderType: "microsoft.documentdb/databaseaccounts",
			Strategy:     StrategyHostnameProperty,
			Property:     "documentEndpoint",
			Label:        "Document Endpoint",
		}},
		{Kind: "MySQLServers", Spec: GenericSpec{
			ProviderType: "microsoft.dbformysql/flexibleservers",
			Strategy:     StrategyHostnameProperty,
			Property:     "fullyQualifiedDomainName",
			Label:        "MySQL Endpoint",
		}},
		{Kind: "PostgreSQLServers", Spec: GenericSpec{
			ProviderType: "microsoft.dbforpostgresql/flexibleservers",
			Strategy:     StrategyHostnameProperty,
			Property:     "fullyQualifiedDomainName",
			Label:        "PostgreSQL Endpoint",
		}},
		{Kind: "EventHubNamespaces", Spec: GenericSpec{
			ProviderType: "microsoft.eventhub/namespaces",
			Strategy:     StrategyHostnameProperty,
			Property:     "serviceBusEndpoint",
			Label:        "Event Hub Endpoint",
		}},
		{Kind: "ServiceBusNamespaces", Spec: GenericSpec{
			ProviderType: "microsoft.servicebus/namespaces",
			Strategy:     StrategyHostnameProperty,
			Property:     "serviceBusEndpoint",
			Label:        "Service Bus Endpoint",
		}},
		{Kind: "SearchServices", Spec: GenericSpec{
			ProviderType: "microsoft.search/searchservices",
			Strategy:     StrategyFQDNFromName,
			FQDNSuffix:   ".search.windows.net",
			Label:        "Search Endpoint",
		}},
		{Kind: "SignalRServices", Spec: GenericSpec{
			ProviderType: "microsoft.signalrservice/signalr",
			Strategy:     StrategyHostnameProperty,
			Property:     "hostName",
			Label:        "SignalR Hostname",
		}},
		{Kind: "AppConfigurationStores", Spec: GenericSpec{
			ProviderType: "microsoft.appconfiguration/configurationstores",
			Strategy:     StrategyHostnameProperty,
			Property:     "endpoint",
			Label:        "Configuration Endpoint",
		}},
		{Kind: "CognitiveServicesAccounts", Spec: GenericSpec{
			ProviderType: "microsoft.cognitiveservices/accounts",
			Strategy:     StrategyHostnameProperty,
			Property:     "endpoint",
			Label:        "Cognitive Endpoint",
		}},
		{Kind: "APIManagementServices", Spec: GenericSpec{
			ProviderType: "microsoft.apimanagement/service",
			Strategy:     StrategyHostnameProperty,
			Property:     "gatewayUrl",
			Label:        "Gateway URL",
		}},
		{Kind: "CDNEndpoints", Spec: GenericSpec{
			ProviderType: "microsoft.cdn/profiles/endpoints",
			Strategy:     StrategyHostnameProperty,
			Property:     "hostName",
			Label:        "CDN Hostname",
		}},
	}
}
