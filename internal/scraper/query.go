package scraper

import "strings"

// FieldNode is one node of the glue-api includeFields tree. A node
// without children renders as its bare name; a node with children
// renders as name(child,child,...).
type FieldNode struct {
	Name     string
	Children []FieldNode
}

// DefaultListingFields are the listing attributes requested per result.
func DefaultListingFields() []string {
	return []string{
		"id",
		"title",
		"usableAreas",
		"bedrooms",
		"bathrooms",
		"parkingSpaces",
		"amenities",
		"address",
		"pricingInfos",
		"listingType",
		"status",
		"createdAt",
	}
}

// DefaultAccountFields are the advertiser attributes requested per result.
func DefaultAccountFields() []string {
	return []string{"id", "name", "licenseNumber", "logoUrl"}
}

// SearchQuery builds the full includeFields tree for a listings search.
func SearchQuery(listingFields, accountFields []string) []FieldNode {
	return []FieldNode{
		{Name: "search", Children: []FieldNode{
			{Name: "result", Children: []FieldNode{
				{Name: "listings", Children: []FieldNode{
					{Name: "listing", Children: leaves(listingFields)},
					{Name: "account", Children: leaves(accountFields)},
					{Name: "medias"},
					{Name: "accountLink"},
					{Name: "link"},
				}},
			}},
			{Name: "totalCount"},
		}},
		{Name: "page"},
		{Name: "facets"},
		{Name: "fullUriFragments"},
	}
}

// RenderFields renders a field tree into the comma-joined includeFields
// query parameter value.
func RenderFields(nodes []FieldNode) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if len(n.Children) == 0 {
			parts = append(parts, n.Name)
			continue
		}
		parts = append(parts, n.Name+"("+RenderFields(n.Children)+")")
	}
	return strings.Join(parts, ",")
}

func leaves(names []string) []FieldNode {
	nodes := make([]FieldNode, len(names))
	for i, name := range names {
		nodes[i] = FieldNode{Name: name}
	}
	return nodes
}
