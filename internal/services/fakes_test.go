package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"skillsyncBack/internal/models"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func ident(token string) *models.Identity {
	return &models.Identity{TokenIdentifier: token, Subject: token}
}

type fakeUsers struct {
	mu        sync.Mutex
	users     []models.User
	languages map[int][]string
	skills    map[int][]models.Skill
}

func (f *fakeUsers) find(match func(models.User) bool) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, models.ErrNoRecord
}

func (f *fakeUsers) GetByID(ctx context.Context, id int) (models.User, error) {
	return f.find(func(u models.User) bool { return u.ID == id })
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return f.find(func(u models.User) bool { return u.Username == username })
}

func (f *fakeUsers) GetByToken(ctx context.Context, token string) (models.User, error) {
	return f.find(func(u models.User) bool { return u.TokenIdentifier == token })
}

func (f *fakeUsers) GetByIDs(ctx context.Context, ids []int) (map[int]models.User, error) {
	out := map[int]models.User{}
	for _, id := range ids {
		if u, err := f.GetByID(ctx, id); err == nil {
			out[id] = u
		}
	}
	return out, nil
}

func (f *fakeUsers) GetAll(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeUsers) Upsert(ctx context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.users {
		if existing.TokenIdentifier == u.TokenIdentifier {
			f.users[i].FullName = u.FullName
			f.users[i].ProfileImageURL = u.ProfileImageURL
			return f.users[i], nil
		}
		if existing.Username == u.Username {
			return models.User{}, models.ErrDuplicateUsername
		}
	}
	u.ID = len(f.users) + 1
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUsers) GetLanguages(ctx context.Context, userID int) ([]string, error) {
	return f.languages[userID], nil
}

func (f *fakeUsers) GetSkills(ctx context.Context, userID int) ([]models.Skill, error) {
	return f.skills[userID], nil
}

type fakeGigs struct {
	mu   sync.Mutex
	gigs []models.Gig
}

func (f *fakeGigs) filter(keep func(models.Gig) bool) []models.Gig {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Gig{}
	for _, g := range f.gigs {
		if keep(g) {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeGigs) CreateGig(ctx context.Context, g models.Gig) (models.Gig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g.ID = 500 + len(f.gigs)
	g.CreatedAt = t0
	f.gigs = append(f.gigs, g)
	return g, nil
}

func (f *fakeGigs) GetGigByID(ctx context.Context, id int) (models.Gig, error) {
	found := f.filter(func(g models.Gig) bool { return g.ID == id })
	if len(found) == 0 {
		return models.Gig{}, models.ErrNoRecord
	}
	return found[0], nil
}

func (f *fakeGigs) ListPublished(ctx context.Context) ([]models.Gig, error) {
	return f.filter(func(g models.Gig) bool { return g.Published }), nil
}

func (f *fakeGigs) SearchPublished(ctx context.Context, text string) ([]models.Gig, error) {
	text = strings.ToLower(text)
	return f.filter(func(g models.Gig) bool {
		return g.Published && strings.Contains(strings.ToLower(g.Title), text)
	}), nil
}

func (f *fakeGigs) ListBySeller(ctx context.Context, sellerID int) ([]models.Gig, error) {
	return f.filter(func(g models.Gig) bool { return g.SellerID == sellerID }), nil
}

func (f *fakeGigs) SetPublished(ctx context.Context, id int, published bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.gigs {
		if f.gigs[i].ID == id {
			f.gigs[i].Published = published
			return nil
		}
	}
	return models.ErrNoRecord
}

type fakeOffers struct {
	mu     sync.Mutex
	offers []models.Offer
}

func (f *fakeOffers) CreateOffer(ctx context.Context, o models.Offer) (models.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o.ID = 2000 + len(f.offers)
	f.offers = append(f.offers, o)
	return o, nil
}

func (f *fakeOffers) GetOfferByID(ctx context.Context, id int) (models.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.offers {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Offer{}, models.ErrNoRecord
}

func (f *fakeOffers) FirstByGig(ctx context.Context, gigID int) (*models.Offer, error) {
	offers, _ := f.ListByGig(ctx, gigID)
	if len(offers) == 0 {
		return nil, nil
	}
	return &offers[0], nil
}

func (f *fakeOffers) ListByGig(ctx context.Context, gigID int) ([]models.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Offer{}
	for _, o := range f.offers {
		if o.GigID == gigID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeReviews struct {
	mu      sync.Mutex
	reviews []models.Review
}

func (f *fakeReviews) CreateReview(ctx context.Context, r models.Review) (models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.reviews {
		if existing.AuthorID == r.AuthorID && existing.GigID == r.GigID {
			return models.Review{}, models.ErrAlreadyReviewed
		}
	}
	r.ID = len(f.reviews) + 1
	f.reviews = append(f.reviews, r)
	return r, nil
}

func (f *fakeReviews) list(keep func(models.Review) bool) []models.Review {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Review{}
	for _, r := range f.reviews {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeReviews) ListByGig(ctx context.Context, gigID int) ([]models.Review, error) {
	return f.list(func(r models.Review) bool { return r.GigID == gigID }), nil
}

func (f *fakeReviews) ListBySeller(ctx context.Context, sellerID int) ([]models.Review, error) {
	return f.list(func(r models.Review) bool { return r.SellerID == sellerID }), nil
}

type fakeFavorites struct {
	mu   sync.Mutex
	favs map[[2]int]bool
}

func (f *fakeFavorites) AddFavorite(ctx context.Context, userID, gigID int) (models.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.favs == nil {
		f.favs = map[[2]int]bool{}
	}
	if f.favs[[2]int{userID, gigID}] {
		return models.Favorite{}, models.ErrAlreadyFavorited
	}
	f.favs[[2]int{userID, gigID}] = true
	return models.Favorite{ID: len(f.favs), UserID: userID, GigID: gigID}, nil
}

func (f *fakeFavorites) RemoveFavorite(ctx context.Context, userID, gigID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.favs[[2]int{userID, gigID}] {
		return models.ErrNotFavorited
	}
	delete(f.favs, [2]int{userID, gigID})
	return nil
}

func (f *fakeFavorites) IsFavorited(ctx context.Context, userID, gigID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.favs[[2]int{userID, gigID}], nil
}

func (f *fakeFavorites) FavoritedAmong(ctx context.Context, userID int, gigIDs []int) (map[int]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[int]bool{}
	for _, id := range gigIDs {
		if f.favs[[2]int{userID, id}] {
			out[id] = true
		}
	}
	return out, nil
}

type fakeMedia struct {
	mu    sync.Mutex
	media []models.Media
}

func (f *fakeMedia) CreateMedia(ctx context.Context, m models.Media) (models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = len(f.media) + 1
	f.media = append(f.media, m)
	return m, nil
}

func (f *fakeMedia) FirstByGig(ctx context.Context, gigID int) (*models.Media, error) {
	media, _ := f.ListByGig(ctx, gigID)
	if len(media) == 0 {
		return nil, nil
	}
	return &media[0], nil
}

func (f *fakeMedia) ListByGig(ctx context.Context, gigID int) ([]models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Media{}
	for _, m := range f.media {
		if m.GigID == gigID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeCategories struct {
	subs  []models.Subcategory
	calls int
}

func (f *fakeCategories) GetCategoriesWithSubcategories(ctx context.Context) ([]models.Category, error) {
	f.calls++
	return []models.Category{{ID: 1, Name: "Design", Subcategories: f.subs}}, nil
}

func (f *fakeCategories) ListSubcategories(ctx context.Context) ([]models.Subcategory, error) {
	return f.subs, nil
}

func (f *fakeCategories) GetSubcategoryByName(ctx context.Context, name string) (models.Subcategory, error) {
	for _, s := range f.subs {
		if s.Name == name {
			return s, nil
		}
	}
	return models.Subcategory{}, models.ErrNoRecord
}

func (f *fakeCategories) GetSubcategoryByID(ctx context.Context, id int) (models.Subcategory, error) {
	for _, s := range f.subs {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Subcategory{}, models.ErrNoRecord
}

type fakeOrders struct {
	mu     sync.Mutex
	orders []models.Order
}

func (f *fakeOrders) CreateOrder(ctx context.Context, o models.Order) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.orders {
		if existing.StripeSessionID == o.StripeSessionID {
			return false, nil
		}
	}
	o.ID = len(f.orders) + 1
	f.orders = append(f.orders, o)
	return true, nil
}

func (f *fakeOrders) ListByGig(ctx context.Context, gigID int) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for _, o := range f.orders {
		if o.GigID == gigID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeStorage struct {
	fail     map[string]bool
	uploaded map[string][]byte
}

func (f *fakeStorage) PresignGet(key string) (string, error) {
	if f.fail[key] {
		return "", errors.New("presign failed")
	}
	return "https://cdn.test/" + key, nil
}

func (f *fakeStorage) Upload(ctx context.Context, key, contentType string, data []byte) error {
	if f.uploaded == nil {
		f.uploaded = map[string][]byte{}
	}
	f.uploaded[key] = data
	return nil
}

type fakePrices struct {
	names []string
}

func (f *fakePrices) CreatePrice(ctx context.Context, productName string, amount float64) (string, error) {
	f.names = append(f.names, productName)
	return "price_test", nil
}

// world is a small marketplace: alice sells, bob and carol buy.
type world struct {
	users      *fakeUsers
	gigs       *fakeGigs
	offers     *fakeOffers
	reviews    *fakeReviews
	favorites  *fakeFavorites
	media      *fakeMedia
	categories *fakeCategories
	orders     *fakeOrders
	storage    *fakeStorage
}

const richDescription = `[{"type":"paragraph","content":[{"type":"text","text":"Clean vector logos"}]}]`

func newWorld() *world {
	return &world{
		users: &fakeUsers{
			users: []models.User{
				{ID: 1, TokenIdentifier: "tok-alice", Username: "alice", FullName: "Alice A", Country: "NZ"},
				{ID: 2, TokenIdentifier: "tok-bob", Username: "bob", FullName: "Bob B"},
				{ID: 3, TokenIdentifier: "tok-carol", Username: "carol", FullName: "Carol C"},
			},
			languages: map[int][]string{1: {"English", "Maori"}},
			skills:    map[int][]models.Skill{1: {{ID: 1, UserID: 1, Skill: "Illustrator"}}},
		},
		gigs: &fakeGigs{gigs: []models.Gig{
			{ID: 100, Title: "Modern logo", Description: richDescription, SellerID: 1, SubcategoryID: 10, Published: true, CreatedAt: t0.Add(2 * time.Hour)},
			{ID: 101, Title: "Landing page", Description: "I build pages", SellerID: 1, SubcategoryID: 11, Published: true, CreatedAt: t0.Add(time.Hour)},
			{ID: 102, Title: "Draft logo", SellerID: 1, SubcategoryID: 10, Published: false, CreatedAt: t0.Add(3 * time.Hour)},
		}},
		offers: &fakeOffers{offers: []models.Offer{
			{ID: 1000, GigID: 100, Tier: "basic", Price: 50, DeliveryDays: 2},
			{ID: 1001, GigID: 100, Tier: "premium", Price: 150, DeliveryDays: 5},
			{ID: 1002, GigID: 101, Tier: "basic", Price: 300, DeliveryDays: 7},
		}},
		reviews: &fakeReviews{reviews: []models.Review{
			{ID: 1, GigID: 100, AuthorID: 2, SellerID: 1, CommunicationLevel: 4, RecommendToAFriend: 5, ServiceAsDescribed: 5},
			{ID: 2, GigID: 100, AuthorID: 3, SellerID: 1, CommunicationLevel: 3, RecommendToAFriend: 3, ServiceAsDescribed: 3},
		}},
		favorites: &fakeFavorites{favs: map[[2]int]bool{{2, 101}: true}},
		media: &fakeMedia{media: []models.Media{
			{ID: 1, GigID: 100, StorageID: "gigs/100/a.png", Format: "image"},
			{ID: 2, GigID: 100, StorageID: "gigs/100/b.png", Format: "image"},
		}},
		categories: &fakeCategories{subs: []models.Subcategory{
			{ID: 10, CategoryID: 1, Name: "Logo Design"},
			{ID: 11, CategoryID: 1, Name: "Web Development"},
		}},
		orders: &fakeOrders{orders: []models.Order{
			{ID: 1, GigID: 100, OfferID: 1000, Amount: 50, Status: models.OrderStatusPaid, StripeSessionID: "cs_a"},
			{ID: 2, GigID: 100, OfferID: 1001, Amount: 150, Status: models.OrderStatusPending, StripeSessionID: "cs_b"},
		}},
		storage: &fakeStorage{},
	}
}

func (w *world) gigService() *GigService {
	return &GigService{
		Gigs:       w.gigs,
		Users:      w.users,
		Offers:     w.offers,
		Reviews:    w.reviews,
		Favorites:  w.favorites,
		Media:      w.media,
		Categories: w.categories,
		Storage:    w.storage,
	}
}

func (w *world) sellerService() *SellerService {
	return &SellerService{
		Users:   w.users,
		Gigs:    w.gigs,
		Offers:  w.offers,
		Orders:  w.orders,
		Media:   w.media,
		Reviews: w.reviews,
		Storage: w.storage,
	}
}
