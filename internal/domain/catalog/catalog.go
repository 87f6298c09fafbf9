// Package catalog holds the curated filter vocabulary for the archive
// backend: the document types, collections, and brands that are valid
// values for backend field filters.
package catalog

// DocTypes lists the archive's document type vocabulary.
var DocTypes = []string{
	"Report", "Letter", "Memo", "Report Market Research", "Graphics", "Email", "Printout", "Revision",
	"Form", "Draft", "Chart", "Graph", "Map", "List", "Raw Data", "Table", "Speech", "Financial",
	"Questionnaire", "Presentation", "Promotional Material", "Manual", "Contract", "Agenda", "Publication",
	"Handwritten", "Proposal", "Notes", "Brand Review", "Photograph", "Routing Slip", "Personnel Information",
	"Advertisement", "Drawing", "Computer Printout", "Specification", "Marketing Document", "Organizational Chart",
	"Budget", "Budget Review", "Minutes", "Cartons", "Cigarette Package", "News Article", "Pack",
	"Market Research Report", "Report Scientific", "Telex", "Report Formal Report", "Brand Plan", "Corporate",
	"Agreement Resolution", "Magazine Article", "Deposition Exhibit", "Pleading", "Script", "Internet", "Footnote",
	"Study", "Deposition Use", "Newsletter", "Newspaper Article", "Telephone Record", "Bibliography", "Catalog",
	"Deposition", "Invoice", "Market Research Study", "Outline", "Slides", "Website Snapshot", "Email Attachment",
	"Legal Document", "Loose Email Attachment", "Pamphlet", "Video", "Website Internet", "Attachment", "Book",
	"Cartoon", "Computer Disk", "Diagram", "Fax", "Flow Chart", "Formal Legal Document", "Handbook", "Law",
	"Letter Consumer", "Meeting Materials", "Press Release", "Raw Data File", "Report R&d", "Survey Questionnaire",
	"Trial List",
}

// Collections lists the archive collections usable as a collection filter.
var Collections = []string{
	"Master Settlement Agreement",
	"Topical Collections",
	"Additional Tobacco Documents",
}

// Brands lists the brand vocabulary usable as a brand filter.
var Brands = []string{
	"Camel", "Winston", "Salem", "Doral", "Non-rjr Brands", "Kamel", "Vantage", "Eclipse", "Monarch",
	"Rjrtc Brands", "Now", "More", "Century", "Planet", "Magna", "Sterling", "Carolina Gold", "Hogshead",
	"B's", "Jumbos", "Camel Ff 85 Men", "Icebox", "Marlboro", "North Star", "Metro", "Sedona", "Horizon",
	"Newport", "Camel Nf 70", "City", "Camel Lt 85", "Politix", "Camel Ff 85", "House Blend", "Camel Ul 85",
	"Kool", "Camel Turkish Gold", "Camel Wides Ff 85", "Winston Select Ff 85", "Premier", "Gpc", "Cavalier",
	"Kamel Ff 85 Menthol", "Winston Ff 85", "Basic", "Camel Special Lights", "Bright", "Dakota", "American Spirit",
	"Chelsea", "Moonlight", "Red Kamel Lt 85", "Lucky Strike", "Winston Ul 85", "R01000", "Camel Menthol",
	"Winston Lt 85", "Parliament", "Salem Lt 85 Menthol", "Ritz", "Misty", "Carlton", "Benson & Hedges",
	"Salem Lt 100 Menthol", "Merit", "Virginia Slims", "Doral Ul 100", "Salem Ff 85 Menthol", "Montclair",
	"Red Kamel Ff 85", "Doral Ff 85", "Camel Ff 100", "Salem Ff 100 Menthol", "Tempo", "Doral Ul 85", "Camel 80",
	"Doral Lt 85", "Old Gold", "Camel Ryo Pouch", "Camel Lt 80", "Kamel Menthol", "Cambridge",
	"Salem Blacklabel Menthol", "Doral Lt 100", "Capri", "Maverick", "Kent", "Winston Ff 100", "Winston Ul 100",
	"Pall Mall", "Best Value", "Players", "Salem Preferred Menthol", "Doral Lt 100 Menthol", "Doral Ff 100",
	"Winston Lt 100", "Camel Ul 100", "Viceroy", "Kamel Lt 85 Menthol",
}

// Fields maps backend filter field names to their curated vocabularies.
func Fields() map[string][]string {
	return map[string][]string{
		"type":       DocTypes,
		"collection": Collections,
		"brand":      Brands,
	}
}
