package calc

import "github.com/bennyhartnett/swucalc/pkg/enrich"

func init() {
	Register("unit", func() Mode { return &UnitMode{} })
	Register("product", func() Mode { return &ProductMode{} })
	Register("feed", func() Mode { return &FeedMode{} })
	Register("swu", func() Mode { return &SWUMode{Solver: enrich.NewSolver(enrich.DefaultOptions())} })
	Register("optimum", func() Mode { return &OptimumMode{Solver: enrich.NewSolver(enrich.DefaultOptions())} })
}

// fromStream also prices the streams when both unit costs are given.
func fromStream(mode string, req Request, st enrich.Stream) Result {
	r := Result{
		Name:    req.Name,
		Mode:    mode,
		Xp:      req.Xp,
		Xf:      req.Xf,
		Xw:      req.Xw,
		Product: st.Product,
		Feed:    st.Feed,
		Waste:   st.Waste,
		SWU:     st.SWU,
	}
	if req.FeedCost > 0 && req.SWUCost > 0 {
		r.Cost = req.FeedCost*st.Feed + req.SWUCost*st.SWU
	}
	return r
}

// UnitMode evaluates one unit of product.
type UnitMode struct{}

func (m *UnitMode) Name() string     { return "unit" }
func (m *UnitMode) Describe() string { return "feed, tails and SWU per unit of product" }

func (m *UnitMode) Run(req Request) (Result, error) {
	st, err := enrich.PerUnitProduct(req.Xp, req.Xf, req.Xw)
	if err != nil {
		return Result{}, err
	}
	return fromStream(m.Name(), req, st), nil
}

// ProductMode evaluates a given product mass.
type ProductMode struct{}

func (m *ProductMode) Name() string     { return "product" }
func (m *ProductMode) Describe() string { return "feed, tails and SWU for a product mass" }

func (m *ProductMode) Run(req Request) (Result, error) {
	st, err := enrich.FromProduct(req.Product, req.Xp, req.Xf, req.Xw)
	if err != nil {
		return Result{}, err
	}
	return fromStream(m.Name(), req, st), nil
}

// FeedMode evaluates a given feed mass.
type FeedMode struct{}

func (m *FeedMode) Name() string     { return "feed" }
func (m *FeedMode) Describe() string { return "product, tails and SWU from a feed mass" }

func (m *FeedMode) Run(req Request) (Result, error) {
	st, err := enrich.FromFeed(req.Feed, req.Xp, req.Xf, req.Xw)
	if err != nil {
		return Result{}, err
	}
	return fromStream(m.Name(), req, st), nil
}

// SWUMode searches for the product mass a given amount of separative work buys.
type SWUMode struct {
	Solver *enrich.Solver
}

func (m *SWUMode) Name() string     { return "swu" }
func (m *SWUMode) Describe() string { return "product and feed for a target SWU" }

func (m *SWUMode) Run(req Request) (Result, error) {
	st, err := m.Solver.FromSWU(req.SWU, req.Xp, req.Xf, req.Xw)
	if err != nil {
		return Result{}, err
	}
	return fromStream(m.Name(), req, st), nil
}

// OptimumMode finds the tails assay that minimizes the cost of one unit of product.
type OptimumMode struct {
	Solver *enrich.Solver
}

func (m *OptimumMode) Name() string     { return "optimum" }
func (m *OptimumMode) Describe() string { return "cost-optimal tails assay for feed and SWU prices" }

func (m *OptimumMode) Run(req Request) (Result, error) {
	opt, err := m.Solver.FindOptimumTails(req.Xp, req.Xf, req.FeedCost, req.SWUCost)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Name:    req.Name,
		Mode:    m.Name(),
		Xp:      req.Xp,
		Xf:      req.Xf,
		Xw:      opt.Tails,
		Product: 1,
		Feed:    opt.FeedPerProduct,
		Waste:   opt.FeedPerProduct - 1,
		SWU:     opt.SWUPerProduct,
		Cost:    opt.CostPerProduct,
	}, nil
}
