package models

// Review - оценка контрагента по завершенному контракту.
// Не более одного отзыва на пару (контракт, автор).
type Review struct {
	BaseModel
	ContractID string `gorm:"type:uuid;not null;uniqueIndex:idx_contract_reviewer" json:"contract_id"`
	ReviewerID string `gorm:"type:uuid;not null;uniqueIndex:idx_contract_reviewer" json:"reviewer_id"`
	RevieweeID string `gorm:"type:uuid;not null;index" json:"reviewee_id"`

	Rating  int    `gorm:"not null" json:"rating"` // 1..5
	Comment string `gorm:"not null" json:"comment"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Reviewee *User `gorm:"foreignKey:RevieweeID" json:"reviewee,omitempty"`
}
