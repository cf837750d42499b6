// Package seed loads the demo menu so a fresh deployment has something
// to sell. Running it against a populated database is a no-op.
package seed

import (
	"context"
	"errors"

	"github.com/usmm07/foodcourt/internal/schema"
	"github.com/usmm07/foodcourt/internal/storage"
	"github.com/usmm07/foodcourt/pkg/logger"
)

type seedItem struct {
	category        int
	name            string
	description     string
	price           string
	image           string
	preparationTime int
	ingredients     []string
	allergens       []string
	tags            []string
	sortOrder       int
}

var seedCategories = []schema.InsertCategory{
	{Name: "Пицца", Description: "Свежая пицца на тонком тесте", Image: "🍕", SortOrder: 1},
	{Name: "Бургеры", Description: "Сочные бургеры с говядиной и курицей", Image: "🍔", SortOrder: 2},
	{Name: "Узбекская кухня", Description: "Традиционные узбекские блюда", Image: "🍛", SortOrder: 3},
	{Name: "Напитки", Description: "Освежающие напитки и соки", Image: "🥤", SortOrder: 4},
}

var seedItems = []seedItem{
	{0, "Пицца Маргарита", "Классическая пицца с томатным соусом, моцареллой и свежим базиликом", "89000", "https://images.unsplash.com/photo-1604382355076-af4b0eb60143?w=600&h=400&fit=crop&crop=center", 15,
		[]string{"томатный соус", "моцарелла", "свежий базилик", "оливковое масло"}, []string{"глютен", "молочные продукты"}, []string{"вегетарианская", "популярная"}, 1},
	{0, "Пицца Пепперони", "Классическая пицца с пепперони и сыром моцарелла", "125000", "https://images.unsplash.com/photo-1565299624946-b28f40a0ca4b?w=600&h=400&fit=crop&crop=center", 15,
		[]string{"томатный соус", "моцарелла", "пепперони"}, []string{"глютен", "молочные продукты"}, []string{"популярная"}, 2},
	{0, "Пицца Четыре сыра", "Пицца с четырьмя видами сыра: моцарелла, горгонзола, пармезан, рикотта", "145000", "https://images.unsplash.com/photo-1571407970349-bc81e7e96d47?w=600&h=400&fit=crop&crop=center", 18,
		[]string{"моцарелла", "горгонзола", "пармезан", "рикотта"}, []string{"глютен", "молочные продукты"}, []string{"вегетарианская", "премиум"}, 3},
	{1, "Классический бургер", "Сочная говяжья котлета с салатом, помидором и маринованными огурцами", "95000", "https://images.unsplash.com/photo-1572802419224-296b0aeee0d9?w=600&h=400&fit=crop&crop=center", 12,
		[]string{"говяжья котлета", "салат", "помидор", "маринованные огурцы", "булочка"}, []string{"глютен"}, []string{"популярный"}, 1},
	{1, "Чикен бургер", "Куриная грудка на гриле с авокадо и майонезом", "85000", "https://images.unsplash.com/photo-1594212699903-ec8a3eca50f5?w=600&h=400&fit=crop&crop=center", 12,
		[]string{"куриная грудка", "авокадо", "майонез", "булочка"}, []string{"глютен"}, []string{"здоровый"}, 2},
	{1, "Двойной чизбургер", "Двойная говяжья котлета с сыром чеддер и специальным соусом", "135000", "https://images.unsplash.com/photo-1520072959219-c595dc870360?w=600&h=400&fit=crop&crop=center", 15,
		[]string{"двойная говяжья котлета", "чеддер", "специальный соус", "лук", "булочка"}, []string{"глютен", "молочные продукты"}, []string{"популярный", "острый"}, 3},
	{2, "Плов", "Традиционный узбекский плов с бараниной, морковью и рисом", "65000", "https://images.unsplash.com/photo-1516684669134-de6f7c473a2a?w=600&h=400&fit=crop&crop=center", 25,
		[]string{"баранина", "рис", "морковь", "лук", "специи"}, nil, []string{"традиционный", "популярный"}, 1},
	{2, "Лагман", "Традиционная лапша с мясом и овощами в ароматном бульоне", "55000", "https://images.unsplash.com/photo-1569718212165-3a8278d5f624?w=600&h=400&fit=crop&crop=center", 20,
		[]string{"лапша", "говядина", "овощи", "зелень", "специи"}, []string{"глютен"}, []string{"традиционный", "суп"}, 2},
	{2, "Шашлык из баранины", "Сочный шашлык из маринованной баранины на мангале", "98000", "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?w=600&h=400&fit=crop&crop=center", 18,
		[]string{"баранина", "лук", "специи"}, nil, []string{"гриль", "популярный"}, 3},
	{2, "Манты", "Паровые пельмени с мясной начинкой и луком", "45000", "https://images.unsplash.com/photo-1534422298391-e4f8c172dddb?w=600&h=400&fit=crop&crop=center", 22,
		[]string{"говядина", "баранина", "лук", "тесто"}, []string{"глютен"}, []string{"традиционный", "на пару"}, 4},
	{3, "Кока-Кола", "Классический освежающий напиток", "15000", "https://images.unsplash.com/photo-1581636625402-29b2a704ef13?w=600&h=400&fit=crop&crop=center", 1,
		[]string{"кола"}, nil, nil, 1},
	{3, "Зеленый чай", "Ароматный зеленый чай высшего качества", "12000", "https://images.unsplash.com/photo-1556679343-c7306c1976bc?w=600&h=400&fit=crop&crop=center", 3,
		[]string{"зеленый чай"}, nil, []string{"здоровый"}, 2},
	{3, "Свежевыжатый апельсиновый сок", "100% натуральный апельсиновый сок", "25000", "https://images.unsplash.com/photo-1621506289937-a8e4df240d0b?w=600&h=400&fit=crop&crop=center", 2,
		[]string{"свежие апельсины"}, nil, []string{"свежий", "витамины"}, 3},
}

var demoUser = schema.InsertUser{
	TelegramID: "123456789",
	FirstName:  "Алексей",
	LastName:   "Иванов",
	Username:   "alexivanov",
	Phone:      "+998901234567",
}

// Run populates the catalog and the demo user when the database is empty.
// A non-empty category table means an earlier run already seeded it.
func Run(ctx context.Context, users storage.UserStore, catalog storage.CatalogStore, log *logger.Logger) error {
	if log == nil {
		log = logger.NewDefault("seed")
	}

	existing, err := catalog.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Debugf("catalog already populated, skipping seed")
		return nil
	}

	if _, err := users.CreateUser(ctx, demoUser); err != nil && !errors.Is(err, storage.ErrConflict) {
		return err
	}

	categoryIDs := make([]int64, 0, len(seedCategories))
	for _, in := range seedCategories {
		created, err := catalog.CreateCategory(ctx, in)
		if err != nil {
			return err
		}
		categoryIDs = append(categoryIDs, created.ID)
	}

	for _, it := range seedItems {
		prep := it.preparationTime
		if _, err := catalog.CreateMenuItem(ctx, schema.InsertMenuItem{
			CategoryID:      categoryIDs[it.category],
			Name:            it.name,
			Description:     it.description,
			Price:           it.price,
			Image:           it.image,
			PreparationTime: &prep,
			Ingredients:     it.ingredients,
			Allergens:       it.allergens,
			Tags:            it.tags,
			SortOrder:       it.sortOrder,
		}); err != nil {
			return err
		}
	}

	log.Infof("seeded %d categories and %d menu items", len(seedCategories), len(seedItems))
	return nil
}
