package combat

type ipsBonus struct {
	ips   Ips
	value float64
}

//PhysicalAccumulator sums impact/puncture/slash bonuses for a single hit
type PhysicalAccumulator struct {
	ips []ipsBonus
}

func (p *PhysicalAccumulator) Add(ips Ips, value float64) {
	p.ips = append(p.ips, ipsBonus{ips, value})
}

//Finalize returns one multiplier per physical type. Types whose bonuses sum
//to zero are left out.
func (p *PhysicalAccumulator) Finalize() map[Ips]float64 {
	result := make(map[Ips]float64)
	for _, v := range p.ips {
		result[v.ips] += v.value
	}
	for k, v := range result {
		if v == 0 {
			delete(result, k)
		}
	}
	return result
}
