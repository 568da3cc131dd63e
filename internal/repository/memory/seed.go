package memory

import (
	"fmt"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

type seedCiderType struct {
	name, description, style string
	abv, srm                 float64
	ibu                      int
	active                   bool
}

var demoCiderTypes = []seedCiderType{
	{"Prickly Pear", "A unique desert cider featuring the sweet, refreshing taste of prickly pear cactus", "Fruit Cider", 6.2, 4.5, 8, true},
	{"Peach", "Sweet and juicy peach cider with notes of summer orchard fruit", "Fruit Cider", 5.8, 5.2, 10, true},
	{"Apple", "Classic apple cider with crisp orchard fruit and a hint of spice", "Traditional Cider", 5.0, 6.2, 10, true},
	{"Rhubarb", "Tart and refreshing rhubarb cider with a perfect balance of sweet and sour", "Fruit Cider", 5.5, 3.8, 12, true},
	{"Seasonal Berry Blend", "Limited edition blend of seasonal berries creating a complex, fruity profile", "Specialty Cider", 6.0, 7.1, 9, false},
}

var demoCustomers = []models.CreateCustomerInput{
	{Name: "The Tipsy Tavern", Email: ptr("orders@tipsytavern.com"), Phone: ptr("555-0101"), ContactPerson: ptr("Mike Johnson")},
	{Name: "Brewhouse Bistro", Email: ptr("contact@brewhouse.com"), Phone: ptr("555-0102"), ContactPerson: ptr("Sarah Chen")},
	{Name: "The Local Pub", Email: ptr("manager@localpub.com"), Phone: ptr("555-0103"), ContactPerson: ptr("David Wilson")},
	{Name: "Craft Corner", Email: ptr("info@craftcorner.com"), Phone: ptr("555-0104"), ContactPerson: ptr("Emma Davis")},
}

func ptr[T any](v T) *T { return &v }

// Seed loads a small demo fleet: four customers, five cider types and five
// kegs spread over every status. Kegs reach their status through regular
// transitions so their history is complete.
func Seed(s *Store) error {
	customerIDs := make([]string, 0, len(demoCustomers))
	for _, in := range demoCustomers {
		customer, err := s.CreateCustomer(in)
		if err != nil {
			return fmt.Errorf("seed customer %q: %w", in.Name, err)
		}
		customerIDs = append(customerIDs, customer.ID)
	}

	for _, ct := range demoCiderTypes {
		_, err := s.CreateCiderType(models.CreateCiderTypeInput{
			Name:        ct.name,
			Description: ptr(ct.description),
			Style:       ptr(ct.style),
			ABV:         ptr(ct.abv),
			IBU:         ptr(ct.ibu),
			SRM:         ptr(ct.srm),
			IsActive:    ptr(ct.active),
		})
		if err != nil {
			return fmt.Errorf("seed cider type %q: %w", ct.name, err)
		}
	}

	fleet := []struct {
		size        models.KegSize
		transitions []models.UpdateKegStatusInput
	}{
		{size: models.KegSizeHalfBarrel},
		{size: models.KegSizeHalfBarrel, transitions: []models.UpdateKegStatusInput{
			{Status: models.KegStatusDirty},
		}},
		{size: models.KegSizeSixthBarrel, transitions: []models.UpdateKegStatusInput{
			{Status: models.KegStatusFull, CiderType: ptr("Apple"), Location: ptr("Warehouse A")},
		}},
		{size: models.KegSizeSixthBarrel, transitions: []models.UpdateKegStatusInput{
			{Status: models.KegStatusFull, CiderType: ptr("Peach")},
			{Status: models.KegStatusDeployed, Location: ptr("Bar Downtown"), CustomerID: ptr(customerIDs[0])},
		}},
		{size: models.KegSizeHalfBarrel},
	}

	for _, entry := range fleet {
		keg, err := s.CreateKeg(models.CreateKegInput{Size: entry.size})
		if err != nil {
			return fmt.Errorf("seed keg: %w", err)
		}
		for _, step := range entry.transitions {
			if _, err := s.UpdateKegStatus(keg.ID, step); err != nil {
				return fmt.Errorf("seed keg %s to %s: %w", keg.ID, step.Status, err)
			}
		}
	}

	return nil
}
