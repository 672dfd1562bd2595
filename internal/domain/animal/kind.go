package animal

import "github.com/Strob0t/animalfarm/internal/domain"

// Kind tags an animal variant. The value is exposed as the "type" field of
// the status snapshot.
type Kind string

const (
	KindBird Kind = "Bird"
	KindDog  Kind = "Dog"
)

// Kinds returns all known variants in a stable order.
func Kinds() []Kind {
	return []Kind{KindBird, KindDog}
}

// ValidKind reports whether k is a known variant.
func ValidKind(k Kind) bool {
	switch k {
	case KindBird, KindDog:
		return true
	}
	return false
}

// CreateRequest holds the fields needed to create an animal. Only the
// capability fields of the requested kind are read.
type CreateRequest struct {
	Kind     Kind   `json:"kind"`
	Name     string `json:"name"`
	CanFly   bool   `json:"canFly"`
	CanCrow  bool   `json:"canCrow"`
	CanBark  bool   `json:"canBark"`
	CanChase bool   `json:"canChase"`
}

// Validate checks that a CreateRequest is well-formed.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return domain.Errorf(domain.KindNameRequired, "Name is required")
	}
	if !ValidKind(r.Kind) {
		return domain.Errorf(domain.KindValidation, "unknown animal kind: %q", r.Kind)
	}
	return nil
}

// New constructs the variant named by req. It does not check uniqueness;
// that is the store's job.
func New(req *CreateRequest) (Animal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	switch req.Kind {
	case KindBird:
		return NewBird(req.Name, req.CanFly, req.CanCrow), nil
	default:
		return NewDog(req.Name, req.CanBark, req.CanChase), nil
	}
}
