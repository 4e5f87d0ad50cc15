package handler

// fakes_test.go provides in-memory implementations of the store interfaces
// so the handlers can be exercised end to end with httptest and no database.

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/repository"
)

// ----- users -----

type fakeUserStore struct {
	seq  uint64
	byID map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[uint64]model.User{}}
}

func (f *fakeUserStore) add(u model.User) model.User {
	if u.ID == 0 {
		f.seq++
		u.ID = f.seq
	} else if u.ID > f.seq {
		f.seq = u.ID
	}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserStore) Create(_ context.Context, nome, email, senhaHash, telefone string) (uint64, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	u := f.add(model.User{
		Nome:      nome,
		Email:     email,
		SenhaHash: senhaHash,
		Telefone:  sql.NullString{String: telefone, Valid: telefone != ""},
		Tipo:      model.UserTypeCliente,
		Ativo:     true,
		CreatedAt: time.Now(),
	})
	return u.ID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) List(_ context.Context, skip, limit int) ([]model.User, error) {
	ids := make([]uint64, 0, len(f.byID))
	for id := range f.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := []model.User{}
	for i, id := range ids {
		if i < skip {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id uint64, p repository.ProfilePatch) error {
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	if p.CPF != nil && *p.CPF != "" {
		for _, other := range f.byID {
			if other.ID != id && other.CPF.Valid && other.CPF.String == *p.CPF {
				return repository.ErrCPFExists
			}
		}
	}
	if p.Nome != nil {
		u.Nome = *p.Nome
	}
	if p.Telefone != nil {
		u.Telefone = sql.NullString{String: *p.Telefone, Valid: *p.Telefone != ""}
	}
	if p.CPF != nil {
		u.CPF = sql.NullString{String: *p.CPF, Valid: *p.CPF != ""}
	}
	f.byID[id] = u
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id uint64, senhaHash string) error {
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.SenhaHash = senhaHash
	f.byID[id] = u
	return nil
}

func (f *fakeUserStore) SetAtivo(_ context.Context, id uint64, ativo bool) error {
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Ativo = ativo
	f.byID[id] = u
	return nil
}

func (f *fakeUserStore) SetTipo(_ context.Context, id uint64, tipo string) error {
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Tipo = tipo
	f.byID[id] = u
	return nil
}

func (f *fakeUserStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

// ----- products -----

type fakeProductStore struct {
	seq        uint64
	byID       map[uint64]model.Product
	lastSearch repository.ProductSearchQuery
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{byID: map[uint64]model.Product{}}
}

func (f *fakeProductStore) add(p model.Product) model.Product {
	if p.ID == 0 {
		f.seq++
		p.ID = f.seq
	} else if p.ID > f.seq {
		f.seq = p.ID
	}
	if p.Status == "" {
		p.Status = model.StatusDisponivel
	}
	f.byID[p.ID] = p
	return p
}

func (f *fakeProductStore) Create(_ context.Context, in repository.ProductInput) (uint64, error) {
	p := model.Product{
		Nome:         in.Nome,
		Descricao:    sql.NullString{String: in.Descricao, Valid: in.Descricao != ""},
		Marca:        sql.NullString{String: in.Marca, Valid: in.Marca != ""},
		CorPrincipal: sql.NullString{String: in.CorPrincipal, Valid: in.CorPrincipal != ""},
		Tamanho:      in.Tamanho,
		Condicao:     in.Condicao,
		PrecoVenda:   in.PrecoVenda,
		Status:       model.StatusDisponivel,
		CategoriaID:  in.CategoriaID,
		Material:     sql.NullString{String: in.Material, Valid: in.Material != ""},
		Cuidados:     sql.NullString{String: in.Cuidados, Valid: in.Cuidados != ""},
		HistoriaPeca: sql.NullString{String: in.HistoriaPeca, Valid: in.HistoriaPeca != ""},
		CreatedAt:    time.Now(),
	}
	if in.PrecoOriginal != nil {
		p.PrecoOriginal = sql.NullFloat64{Float64: *in.PrecoOriginal, Valid: true}
	}
	if in.AnoAproximado != nil {
		p.AnoAproximado = sql.NullInt64{Int64: int64(*in.AnoAproximado), Valid: true}
	}
	return f.add(p).ID, nil
}

func (f *fakeProductStore) GetByID(_ context.Context, id uint64) (model.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return model.Product{}, repository.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductStore) IncrementViews(_ context.Context, id uint64) error {
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Visualizacoes++
	f.byID[id] = p
	return nil
}

func (f *fakeProductStore) Favorite(_ context.Context, id uint64) (uint64, error) {
	p, ok := f.byID[id]
	if !ok {
		return 0, repository.ErrProductNotFound
	}
	p.Favoritado++
	f.byID[id] = p
	return p.Favoritado, nil
}

func (f *fakeProductStore) Update(_ context.Context, id uint64, patch repository.ProductPatch) error {
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	if patch.Nome != nil {
		p.Nome = *patch.Nome
	}
	if patch.Descricao != nil {
		p.Descricao = sql.NullString{String: *patch.Descricao, Valid: *patch.Descricao != ""}
	}
	if patch.Marca != nil {
		p.Marca = sql.NullString{String: *patch.Marca, Valid: *patch.Marca != ""}
	}
	if patch.CorPrincipal != nil {
		p.CorPrincipal = sql.NullString{String: *patch.CorPrincipal, Valid: *patch.CorPrincipal != ""}
	}
	if patch.Tamanho != nil {
		p.Tamanho = *patch.Tamanho
	}
	if patch.Condicao != nil {
		p.Condicao = *patch.Condicao
	}
	if patch.PrecoOriginal != nil {
		p.PrecoOriginal = sql.NullFloat64{Float64: *patch.PrecoOriginal, Valid: true}
	}
	if patch.PrecoVenda != nil {
		p.PrecoVenda = *patch.PrecoVenda
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.CategoriaID != nil {
		p.CategoriaID = *patch.CategoriaID
	}
	if patch.AnoAproximado != nil {
		p.AnoAproximado = sql.NullInt64{Int64: int64(*patch.AnoAproximado), Valid: true}
	}
	if patch.Material != nil {
		p.Material = sql.NullString{String: *patch.Material, Valid: *patch.Material != ""}
	}
	if patch.Cuidados != nil {
		p.Cuidados = sql.NullString{String: *patch.Cuidados, Valid: *patch.Cuidados != ""}
	}
	if patch.HistoriaPeca != nil {
		p.HistoriaPeca = sql.NullString{String: *patch.HistoriaPeca, Valid: *patch.HistoriaPeca != ""}
	}
	f.byID[id] = p
	return nil
}

func (f *fakeProductStore) SoftDelete(_ context.Context, id uint64) error {
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Status = model.StatusInativo
	f.byID[id] = p
	return nil
}

// newestFirst returns the products sorted by descending id, the fake's
// stand-in for creation order.
func (f *fakeProductStore) newestFirst() []model.Product {
	out := make([]model.Product, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeProductStore) ListAll(_ context.Context, skip, limit int) ([]model.Product, error) {
	all := f.newestFirst()
	out := []model.Product{}
	for i, p := range all {
		if i < skip {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductStore) Search(_ context.Context, q repository.ProductSearchQuery) ([]model.Product, int64, error) {
	f.lastSearch = q
	matched := []model.Product{}
	for _, p := range f.newestFirst() {
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.CategoriaID != 0 && p.CategoriaID != q.CategoriaID {
			continue
		}
		matched = append(matched, p)
	}
	total := int64(len(matched))
	out := []model.Product{}
	for i, p := range matched {
		if i < q.Skip {
			continue
		}
		if len(out) == q.Limit {
			break
		}
		out = append(out, p)
	}
	return out, total, nil
}

func (f *fakeProductStore) Count(_ context.Context, status string) (int64, error) {
	var n int64
	for _, p := range f.byID {
		if status == "" || p.Status == status {
			n++
		}
	}
	return n, nil
}

func productMarcaPatch(m string) repository.ProductPatch { return repository.ProductPatch{Marca: &m} }

func productStatusPatch(s string) repository.ProductPatch {
	return repository.ProductPatch{Status: &s}
}

// ----- categories -----

type fakeCategoryStore struct {
	seq  uint64
	byID map[uint64]model.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{byID: map[uint64]model.Category{}}
}

func (f *fakeCategoryStore) add(c model.Category) model.Category {
	if c.ID == 0 {
		f.seq++
		c.ID = f.seq
	} else if c.ID > f.seq {
		f.seq = c.ID
	}
	f.byID[c.ID] = c
	return c
}

func (f *fakeCategoryStore) GetByID(_ context.Context, id uint64) (model.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return model.Category{}, repository.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCategoryStore) ListAtivas(_ context.Context) ([]model.Category, error) {
	out := []model.Category{}
	for _, c := range f.byID {
		if c.Ativa {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrdemExibicao != out[j].OrdemExibicao {
			return out[i].OrdemExibicao < out[j].OrdemExibicao
		}
		return out[i].Nome < out[j].Nome
	})
	return out, nil
}

func (f *fakeCategoryStore) Create(_ context.Context, nome, descricao string, ordem int) (uint64, error) {
	for _, c := range f.byID {
		if c.Nome == nome {
			return 0, repository.ErrCategoryExists
		}
	}
	c := f.add(model.Category{
		Nome:          nome,
		Descricao:     sql.NullString{String: descricao, Valid: descricao != ""},
		Ativa:         true,
		OrdemExibicao: ordem,
	})
	return c.ID, nil
}

func (f *fakeCategoryStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}
