package catalog

import "github.com/beacheats/beachsync/internal/models"

// The code-defined default menu. Admin overrides are diffed against these
// tables; anything not overridden resolves back to what is written here.

func defaultProteins() []models.Item {
	return []models.Item{
		{ID: "chicken", Name: lt("Chicken", "Pollo"), Description: lt("Free-range, herb-marinated", "De libre pastoreo, marinado con hierbas"), Icon: "chicken", Dietary: []string{"gf", "df"}, Available: true},
		{ID: "fish", Name: lt("Catch of the Day", "Pesca del Día"), Description: lt("Fresh from Bahía de Banderas", "Fresco de Bahía de Banderas"), Icon: "fish", Dietary: []string{"gf", "df"}, Available: true},
		{ID: "shrimp", Name: lt("Pacific Shrimp", "Camarón del Pacífico"), Description: lt("Wild-caught, sustainably sourced", "Silvestre, de origen sostenible"), Icon: "shrimp", Dietary: []string{"gf", "df"}, Available: true},
		{ID: "beef", Name: lt("Rib Eye", "Rib Eye"), Description: lt("Prime cut, charred to perfection", "Corte premium, asado a la perfección"), Icon: "beef", Dietary: []string{"gf", "df"}, Available: true},
		{ID: "pork", Name: lt("Pork Belly", "Panceta de Cerdo"), Description: lt("Slow-cooked confit", "Confitada a fuego lento"), Icon: "pork", Dietary: []string{"gf", "df"}, Available: true},
		{ID: "mushrooms", Name: lt("Wild Mushrooms", "Hongos Silvestres"), Description: lt("Seasonal forest medley", "Variedad de temporada del bosque"), Icon: "mushrooms", Dietary: []string{"gf", "df", "v", "vg"}, Available: true},
	}
}

func defaultFormats() []models.Item {
	return []models.Item{
		{ID: "tacos", Name: lt("Tacos", "Tacos"), Description: lt("Handmade corn tortillas (3)", "Tortillas de maíz hechas a mano (3)"), Icon: "tacos", Dietary: []string{"gf"}, Available: true},
		{ID: "salad", Name: lt("Salad", "Ensalada"), Description: lt("Fresh greens, citrus vinaigrette", "Lechugas frescas, vinagreta de cítricos"), Icon: "salad", Dietary: []string{"gf", "df", "v", "vg"}, Available: true},
		{ID: "tlayuda", Name: lt("Tlayuda", "Tlayuda"), Description: lt("Large crispy Oaxacan tortilla", "Tortilla oaxaqueña crujiente grande"), Icon: "tlayuda", Dietary: []string{"gf"}, Available: true},
		{ID: "burrito", Name: lt("Burrito", "Burrito"), Description: lt("Flour tortilla, rice, black beans", "Tortilla de harina, arroz, frijoles negros"), Icon: "burrito", Dietary: []string{"v"}, Available: true},
	}
}

func defaultAddons() []models.Item {
	return []models.Item{
		{ID: "guacamole", Name: lt("Guacamole", "Guacamole"), Description: lt("Fresh avocado, cilantro, lime", "Aguacate fresco, cilantro, limón"), Icon: "avocado", Dietary: []string{"gf", "df", "v", "vg"}, Available: true},
		{ID: "salsa-verde", Name: lt("Salsa Verde", "Salsa Verde"), Description: lt("Roasted tomatillo, serrano", "Tomatillo asado, serrano"), Icon: "salsaVerde", Dietary: []string{"gf", "df", "v", "vg", "spicy"}, Available: true},
		{ID: "salsa-roja", Name: lt("Salsa Roja", "Salsa Roja"), Description: lt("Dried chile, tomato", "Chile seco, tomate"), Icon: "salsaRoja", Dietary: []string{"gf", "df", "v", "vg", "spicy"}, Available: true},
		{ID: "crema", Name: lt("Crema", "Crema"), Description: lt("House-made Mexican crema", "Crema mexicana hecha en casa"), Icon: "crema", Dietary: []string{"gf", "v"}, Available: true},
		{ID: "cheese", Name: lt("Queso", "Queso"), Description: lt("Queso fresco & cotija", "Queso fresco y cotija"), Icon: "cheese", Dietary: []string{"gf", "v"}, Available: true},
		{ID: "pickled-onion", Name: lt("Pickled Onion", "Cebolla Encurtida"), Description: lt("Habanero-infused red onion", "Cebolla morada con habanero"), Icon: "salsaRoja", Dietary: []string{"gf", "df", "v", "vg", "spicy"}, Available: true},
	}
}

func defaultExclusions() []models.Item {
	return []models.Item{
		{ID: "no-crema", Name: lt("No Crema", "Sin Crema"), Available: true},
		{ID: "no-cheese", Name: lt("No Cheese", "Sin Queso"), Available: true},
		{ID: "no-onion", Name: lt("No Onion", "Sin Cebolla"), Available: true},
		{ID: "no-cilantro", Name: lt("No Cilantro", "Sin Cilantro"), Available: true},
		{ID: "no-spicy", Name: lt("No Spicy", "Sin Picante"), Available: true},
		{ID: "no-avocado", Name: lt("No Avocado", "Sin Aguacate"), Available: true},
	}
}

func defaultMenuItems() map[string][]models.Item {
	return map[string][]models.Item{
		"picaditos": {
			{ID: "guacamole", Name: lt("Guacamole", "Guacamole"), Description: lt("Chile serrano, onion, cilantro, queso añejo, pico de gallo", "Chile serrano, cebolla, cilantro, queso añejo, pico de gallo"), Icon: "guacamole", Dietary: []string{"gf", "v"}, Available: true},
			{ID: "birria-tacos", Name: lt("Birria Tacos", "Tacos de Birria"), Description: lt("Adobo marinated beef stew, guacamole, cheese, pico de gallo", "Estofado de res en adobo, guacamole, queso, pico de gallo"), Icon: "tacos", Dietary: []string{"spicy"}, Available: true},
			{ID: "aguachile-tostada", Name: lt("Aguachile Tostada", "Tostada de Aguachile"), Description: lt("Shrimp, octopus, scallop, red onion, cucumber, cilantro mayo", "Camarón, pulpo, callo, cebolla morada, pepino, mayo de cilantro"), Icon: "ceviche", Dietary: []string{"gf", "spicy"}, Available: true},
			{ID: "ceviche-alvarado", Name: lt("Ceviche Alvarado", "Ceviche Alvarado"), Description: lt("Catch of the day, tomato, celery, cucumber, red onion, salsa bruja", "Pesca del día, tomate, apio, pepino, cebolla morada, salsa bruja"), Icon: "ceviche", Dietary: []string{"gf", "df", "spicy"}, Available: true},
		},
		"tacos": {
			{ID: "pescado-taco", Name: lt("Baja Fish Taco", "Taco de Pescado"), Description: lt("Beer-battered catch, cabbage, chipotle crema", "Pesca capeada, col, crema de chipotle"), Icon: "tacos", Available: true},
			{ID: "carnitas-taco", Name: lt("Carnitas Taco", "Taco de Carnitas"), Description: lt("Slow-braised pork, salsa verde, onion", "Cerdo braseado, salsa verde, cebolla"), Icon: "tacos", Dietary: []string{"gf", "df"}, Available: true},
		},
		"ensaladas": {
			{ID: "ensalada-costa", Name: lt("Coastal Salad", "Ensalada de la Costa"), Description: lt("Grilled shrimp, mango, avocado, citrus dressing", "Camarón a la parrilla, mango, aguacate, aderezo de cítricos"), Icon: "salad", Dietary: []string{"gf", "df"}, Available: true},
		},
		"sandwiches": {
			{ID: "torta-ahogada", Name: lt("Torta Ahogada", "Torta Ahogada"), Description: lt("Carnitas, refried beans, spicy tomato broth", "Carnitas, frijoles refritos, caldo picante de tomate"), Icon: "sandwich", Dietary: []string{"spicy"}, Available: true},
		},
		"postres": {
			{ID: "churros", Name: lt("Churros", "Churros"), Description: lt("Cinnamon sugar, cajeta, chocolate", "Azúcar con canela, cajeta, chocolate"), Icon: "dessert", Dietary: []string{"v"}, Available: true},
			{ID: "flan", Name: lt("Flan de Coco", "Flan de Coco"), Description: lt("Coconut custard, caramel", "Natilla de coco, caramelo"), Icon: "dessert", Dietary: []string{"gf", "v"}, Available: true},
		},
	}
}

// Categories lists the menu categories in display order. "build-your-own"
// is the wizard entry point and carries no ready-made items.
var Categories = []string{"build-your-own", "picaditos", "tacos", "ensaladas", "sandwiches", "postres"}

func defaultVisibility() map[string]bool {
	v := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		v[c] = true
	}
	return v
}

func lt(en, es string) models.LocalizedText { return models.LocalizedText{EN: en, ES: es} }
