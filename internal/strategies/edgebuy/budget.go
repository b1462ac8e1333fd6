package edgebuy

// BudgetTracker 跟踪会话内已确认的消费。
// 只有交易所确认接受的订单才调用 Record；被拒绝或失败的尝试不占预算。
type BudgetTracker struct {
	ceiling float64
	spent   float64
}

func NewBudgetTracker(ceiling float64) *BudgetTracker {
	return &BudgetTracker{ceiling: ceiling}
}

// Remaining 剩余可消费金额。
func (b *BudgetTracker) Remaining() float64 {
	return b.ceiling - b.spent
}

// Spent 已确认消费总额。
func (b *BudgetTracker) Spent() float64 {
	return b.spent
}

// CanAfford 剩余预算是否足以覆盖一笔 amount 的订单。
func (b *BudgetTracker) CanAfford(amount float64) bool {
	return b.Remaining() >= amount
}

// Record 记录一笔已确认的消费。
func (b *BudgetTracker) Record(amount float64) {
	b.spent += amount
}
